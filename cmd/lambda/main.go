package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"serverless-adapter/internal/handlers"
	"serverless-adapter/pkg/server"
)

// The container is built on the first invocation and reused while the
// execution environment stays warm.
var manager = server.NewContainerManager(handlers.NewApp)

func main() {
	awslambda.Start(manager.Invoke)
}
