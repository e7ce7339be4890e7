package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/academy-lambda/internal/config"
	"github.com/saulo-duarte/academy-lambda/internal/container"
	"github.com/saulo-duarte/academy-lambda/internal/router"
)

var adapter *httpadapter.HandlerAdapter

func init() {
	c, err := container.New(context.Background())
	if err != nil {
		config.Log.WithError(err).Fatal("Failed to start")
	}
	adapter = httpadapter.New(router.NewFromContainer(c))
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
