package main

import (
	"github.com/alecthomas/kong"

	"github.com/smart24/kotlin-native/cmd/konanbridge/commands"
	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("konanbridge"),
		kong.Description("Bridges Xcode-exported build settings to Kotlin/Native Gradle builds."),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{}, &cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, nil)
		adapter.HandleError(err)
	}
}
