package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/choria-io/fisk"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sequinstream/sequin-go/context"
)

type ctxCommand struct {
	name        string
	description string
	serverURL   string
	setDefault  bool
}

func AddContextCommands(app *fisk.Application, _ *Config) {
	cmd := &ctxCommand{}
	ctx := app.Command("context", "Manage sequin configuration contexts")

	add := ctx.Command("add", "Create or update a context").Alias("create").Action(cmd.addAction)
	add.Arg("name", "The context name").StringVar(&cmd.name)
	add.Flag("description", "Set a friendly description for this context").StringVar(&cmd.description)
	add.Flag("server-url", "The server URL for this context").StringVar(&cmd.serverURL)
	add.Flag("set-default", "Set this context as the default").BoolVar(&cmd.setDefault)

	ctx.Command("ls", "List all contexts").Action(cmd.listAction)

	info := ctx.Command("info", "Show details of a specific context").Action(cmd.infoAction)
	info.Arg("name", "The context name").StringVar(&cmd.name)

	rm := ctx.Command("rm", "Remove a context").Action(cmd.removeAction)
	rm.Arg("name", "The context name").Required().StringVar(&cmd.name)

	selectCmd := ctx.Command("select", "Select a default context").Action(cmd.selectAction)
	selectCmd.Arg("name", "The context name").Required().StringVar(&cmd.name)
}

func (c *ctxCommand) addAction(_ *fisk.ParseContext) error {
	if c.name == "" {
		err := survey.AskOne(&survey.Input{
			Message: "Enter the context name:",
		}, &c.name)
		if err != nil {
			return fmt.Errorf("failed to get context name: %w", err)
		}
	}

	if c.serverURL == "" {
		err := survey.AskOne(&survey.Input{
			Message: "Enter the server URL (e.g., http://localhost:7673):",
			Default: context.DefaultContext().ServerURL,
		}, &c.serverURL)
		if err != nil {
			return fmt.Errorf("failed to get server URL: %w", err)
		}
	}

	ctx := context.Context{
		Name:        c.name,
		Description: c.description,
		ServerURL:   c.serverURL,
	}

	err := context.SaveContext(ctx)
	if err != nil {
		return fmt.Errorf("could not save context: %w", err)
	}

	fmt.Print(text.FgGreen.Sprintf("Context '%s' created successfully.\n", c.name))

	if c.setDefault {
		err := context.SetDefaultContext(c.name)
		if err != nil {
			return fmt.Errorf("could not set default context: %w", err)
		}
		fmt.Printf("Context '%s' set as default.\n", c.name)
	}

	return nil
}

func (c *ctxCommand) listAction(_ *fisk.ParseContext) error {
	contexts, err := context.ListContexts()
	if err != nil {
		return fmt.Errorf("could not list contexts: %w", err)
	}

	if len(contexts) == 0 {
		fmt.Println("No contexts defined")
		return nil
	}

	writer := newTableWriter("Contexts")
	writer.AppendHeader(table.Row{"Name", "Description", "Server URL"})
	for _, ctx := range contexts {
		writer.AppendRow(table.Row{ctx.Name, ctx.Description, ctx.ServerURL})
	}
	fmt.Println(writer.Render())

	return nil
}

func (c *ctxCommand) infoAction(_ *fisk.ParseContext) error {
	ctx, err := context.LoadContext(c.name)
	if err != nil {
		return fmt.Errorf("could not load context: %w", err)
	}

	fmt.Printf("Name:        %s\n", ctx.Name)
	fmt.Printf("Description: %s\n", ctx.Description)
	fmt.Printf("Server URL:  %s\n", ctx.ServerURL)

	return nil
}

func (c *ctxCommand) removeAction(_ *fisk.ParseContext) error {
	err := context.RemoveContext(c.name)
	if err != nil {
		return fmt.Errorf("could not remove context: %w", err)
	}

	fmt.Printf("Context '%s' removed.\n", c.name)
	return nil
}

func (c *ctxCommand) selectAction(_ *fisk.ParseContext) error {
	err := context.SetDefaultContext(c.name)
	if err != nil {
		return fmt.Errorf("could not set default context: %w", err)
	}

	fmt.Printf("Context '%s' set as default.\n", c.name)
	return nil
}
