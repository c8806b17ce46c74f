package main

import (
	"os"
	"runtime/debug"

	"github.com/choria-io/fisk"

	"github.com/sequinstream/sequin-go/api"
	"github.com/sequinstream/sequin-go/cli"
)

var (
	version = "development"
	config  = cli.Config{}
)

func main() {
	help := `Sequin CLI

Manage streams and consumers, send and receive messages`

	scli := fisk.New("sequin", help)
	scli.Author("Sequin Authors <support@sequinstream.com>")
	scli.UsageWriter(os.Stdout)
	scli.Version(getVersion())
	scli.HelpFlag.Short('h')

	// Add global flags
	scli.Flag("context", "Use a specific context").StringVar(&config.ContextName)
	scli.Flag("as-curl", "Print the request as a curl command instead of sending it").BoolVar(&config.AsCurl)

	apiClient := api.NewClient()

	cli.AddContextCommands(scli, &config)
	cli.AddStreamCommands(scli, &config, apiClient)
	cli.AddConsumerCommands(scli, &config, apiClient)

	scli.MustParseWithUsage(os.Args[1:])
}

func getVersion() string {
	if version != "development" {
		return version
	}

	nfo, ok := debug.ReadBuildInfo()
	if !ok || (nfo != nil && nfo.Main.Version == "") {
		return version
	}

	return nfo.Main.Version
}
