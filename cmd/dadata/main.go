// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command dadata looks up parties in the DaData suggestions service.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gogama/dadata/internal/cli"
)

var version = "dev" // set during build

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := (&cli.App{Version: version}).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
