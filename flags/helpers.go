package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

func NewApp() *cli.App {

	app := cli.NewApp()
	app.Name = "stackmint"
	app.Usage = "StackMint token-economics engine"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	return app

}
