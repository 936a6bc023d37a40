package main

import (
	"log"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/romashorodok/salon-platform/pkg/variables"

	_ "github.com/romashorodok/salon-platform/functions"
)

func main() {
	port := variables.Env(variables.FUNCTIONS_PORT_NAME, variables.FUNCTIONS_PORT_DEFAULT)
	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %v\n", err)
	}
}
