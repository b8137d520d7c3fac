package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	gatewayx "github.com/pushlivechat/flowstart/flow/gateway"
	orchestratorx "github.com/pushlivechat/flowstart/flow/orchestrator"
	commandx "github.com/pushlivechat/flowstart/host/command"
	endpointx "github.com/pushlivechat/flowstart/host/endpoint"
	configx "github.com/pushlivechat/flowstart/pkg/config"
	logx "github.com/pushlivechat/flowstart/pkg/logger"
	rapidprox "github.com/pushlivechat/flowstart/pkg/rapidpro"
	rocketchatx "github.com/pushlivechat/flowstart/pkg/rocketchat"
)

type AppConfig struct {
	FlowID             string `split_words:"true" required:"true"`
	BotUserID          string `split_words:"true" required:"true"`
	RequiredRole       string `split_words:"true" default:"livechat-agent"`
	DefaultCountryCode string `split_words:"true" default:"55"`
	ListenAddr         string `split_words:"true" default:":8080"`
	SuccessRedirectURL string `split_words:"true" default:"/"`
}

func main() {
	logCfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*logCfg)

	appCfg := configx.MustNew[AppConfig]("FLOWSTART")

	rapidproCfg := configx.MustNew[rapidprox.Config]("RAPIDPRO")
	rapidproClient := rapidprox.MustNew(*rapidproCfg)

	rocketchatCfg := configx.MustNew[rocketchatx.Config]("ROCKETCHAT")
	rocketchatClient := rocketchatx.MustNew(*rocketchatCfg)

	contactGateway, err := gatewayx.NewRapidProGateway(rapidproClient)
	if err != nil {
		log.Fatal().Err(err).Msg("build contact gateway")
	}

	directory, err := gatewayx.NewRocketChatDirectory(rocketchatClient)
	if err != nil {
		log.Fatal().Err(err).Msg("build agent directory")
	}

	service, err := orchestratorx.New(directory, contactGateway, orchestratorx.Config{
		RequiredRole:       appCfg.RequiredRole,
		DefaultCountryCode: appCfg.DefaultCountryCode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	endpointHandler, err := endpointx.New(service, directory, endpointx.Config{
		FlowID:     appCfg.FlowID,
		BotID:      appCfg.BotUserID,
		SuccessURL: appCfg.SuccessRedirectURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build endpoint handler")
	}

	commandHandler, err := commandx.New(service, appCfg.FlowID)
	if err != nil {
		log.Fatal().Err(err).Msg("build command handler")
	}

	router := gin.Default()
	endpointHandler.Register(router)
	commandHandler.Register(router)

	log.Info().Str("addr", appCfg.ListenAddr).Msg("flowstart listening")
	if err := router.Run(appCfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
