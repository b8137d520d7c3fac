package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/pushlivechat/flowstart/flow/nodes"
)

func (s *Service) compileStartFlowGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("authorize",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.Authorize(in, s.gate)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node authorize: %w", err)
	}

	if err := graph.AddLambdaNode("resolve_agent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ResolveAgent(ctx, in, s.directory)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node resolve_agent: %w", err)
	}

	if err := graph.AddLambdaNode("normalize_urn",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.NormalizeURN(in, s.normalizer)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node normalize_urn: %w", err)
	}

	if err := graph.AddLambdaNode("resolve_contact",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ResolveContact(ctx, in, s.resolver)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node resolve_contact: %w", err)
	}

	if err := graph.AddLambdaNode("start_flow",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.StartFlow(ctx, in, s.gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node start_flow: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_outcome",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeOutcome(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_outcome: %w", err)
	}

	edges := [][2]string{
		{compose.START, "authorize"},
		{"authorize", "resolve_agent"},
		{"resolve_agent", "normalize_urn"},
		{"normalize_urn", "resolve_contact"},
		{"resolve_contact", "start_flow"},
		{"start_flow", "finalize_outcome"},
		{"finalize_outcome", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.start_flow"))
	if err != nil {
		return nil, fmt.Errorf("compile start flow graph: %w", err)
	}
	return runner, nil
}
