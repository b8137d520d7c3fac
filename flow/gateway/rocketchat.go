package gateway

import (
	"context"
	"errors"

	contractx "github.com/pushlivechat/flowstart/flow/contract"
	rocketchatx "github.com/pushlivechat/flowstart/pkg/rocketchat"
)

// RocketChatDirectory implements contract.AgentDirectory over the
// Rocket.Chat admin API.
type RocketChatDirectory struct {
	client *rocketchatx.Client
}

var _ contractx.AgentDirectory = (*RocketChatDirectory)(nil)

func NewRocketChatDirectory(client *rocketchatx.Client) (*RocketChatDirectory, error) {
	if client == nil {
		return nil, errors.New("rocketchat client is required")
	}
	return &RocketChatDirectory{client: client}, nil
}

func (d *RocketChatDirectory) AgentByUsername(ctx context.Context, username string) (*contractx.Agent, error) {
	user, err := d.client.UserByUsername(ctx, username)
	return mapUser(user, err)
}

func (d *RocketChatDirectory) AgentByID(ctx context.Context, id string) (*contractx.Agent, error) {
	user, err := d.client.UserByID(ctx, id)
	return mapUser(user, err)
}

func mapUser(user *rocketchatx.User, err error) (*contractx.Agent, error) {
	if err != nil {
		if errors.Is(err, rocketchatx.ErrUserNotFound) {
			return nil, contractx.ErrAgentNotFound
		}
		return nil, err
	}
	return &contractx.Agent{ID: user.ID, Username: user.Username, Roles: user.Roles}, nil
}
