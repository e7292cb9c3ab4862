package main

import (
	"github.com/filmnest/core/internal/app"
	"github.com/filmnest/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
