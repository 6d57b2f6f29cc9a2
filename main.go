package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/cobra"

	"github.com/yizeng/gab/gin/gorm/secret-santa/cmd/app"
)

// @title           Secret Santa API
// @version         1.0
// @description     Gift-exchange draw service.
// @termsOfService  http://swagger.io/terms/
// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io
//
// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @BasePath  /api/v1
//
// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Start(configPath)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed game settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Migrate(configPath)
		},
	}

	root := &cobra.Command{
		Use:          "santa",
		Short:        "Secret Santa draw service",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "./cmd/app/config.yml", "path to the config file")
	root.AddCommand(serve, migrate)

	return root
}
