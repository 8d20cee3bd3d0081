package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/esign/internal/app"
)

// @title           eSign API
// @version         1.0
// @description     eSign onboards companies and signers, verifies them over Telegram and stores documents for signing.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	application := app.New()
	wait := application.Start()
	<-wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
