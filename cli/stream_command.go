package cli

import (
	"fmt"
	"time"

	"github.com/choria-io/fisk"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sequinstream/sequin-go/api"
	"github.com/sequinstream/sequin-go/context"
)

type StreamConfig struct {
	Name             string
	Key              string
	Data             string
	Force            bool
	OneMessagePerKey bool
	MaxStorageGB     int
}

// AddStreamCommands adds all stream-related commands to the given app
func AddStreamCommands(app *fisk.Application, config *Config, apiClient api.API) {
	stream := app.Command("stream", "Stream related commands").Alias("str").Alias("s")

	s := &StreamConfig{}

	stream.Command("ls", "List streams").Action(func(c *fisk.ParseContext) error {
		return streamLs(c, config, apiClient)
	})

	infoCmd := stream.Command("info", "Show stream info").Action(func(c *fisk.ParseContext) error {
		return streamInfo(c, config, apiClient)
	})
	infoCmd.Arg("stream", "ID or name of the stream to show info for").Required().StringVar(&config.StreamID)

	addCmd := stream.Command("add", "Add a new stream").Action(func(c *fisk.ParseContext) error {
		return streamAdd(c, config, s, apiClient)
	})
	addCmd.Arg("name", "Name of the stream to add").Required().StringVar(&s.Name)
	addCmd.Flag("one-message-per-key", "Allow only one message per key").BoolVar(&s.OneMessagePerKey)
	addCmd.Flag("max-storage-gb", "Maximum storage in GB").IntVar(&s.MaxStorageGB)

	rmCmd := stream.Command("rm", "Remove a stream").Action(func(c *fisk.ParseContext) error {
		return streamRm(c, config, s, apiClient)
	})
	rmCmd.Arg("stream", "ID or name of the stream to remove").Required().StringVar(&config.StreamID)
	rmCmd.Flag("force", "Skip confirmation prompt").BoolVar(&s.Force)

	sendCmd := stream.Command("send", "Send a message to a stream").Action(func(c *fisk.ParseContext) error {
		return streamSend(c, config, s, apiClient)
	})
	sendCmd.Arg("stream", "ID or name of the stream to send to").Required().StringVar(&config.StreamID)
	sendCmd.Arg("key", "Key of the message").Required().StringVar(&s.Key)
	sendCmd.Arg("data", "Data payload of the message").Required().StringVar(&s.Data)
}

func streamLs(_ *fisk.ParseContext, config *Config, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if config.AsCurl {
		req, err := api.BuildFetchStreams(ctx)
		if err != nil {
			return err
		}
		curlCmd, err := formatCurl(req)
		if err != nil {
			return err
		}

		fmt.Println(curlCmd)

		return nil
	}

	streams, err := apiClient.FetchStreams(ctx)
	if err != nil {
		return err
	}

	if len(streams) == 0 {
		fmt.Println("No streams defined")
		return nil
	}

	writer := newTableWriter("Streams")
	writer.AppendHeader(table.Row{"ID", "Name", "Consumers", "Messages", "Storage Size", "Created At"})
	for _, s := range streams {
		writer.AppendRow(table.Row{
			s.ID,
			s.Name,
			s.Stats.ConsumerCount,
			s.Stats.MessageCount,
			humanize.IBytes(uint64(s.Stats.StorageSize)),
			formatTimestamp(s.CreatedAt.Time),
		})
	}
	fmt.Println(writer.Render())

	return nil
}

func streamInfo(_ *fisk.ParseContext, config *Config, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if config.AsCurl {
		req, err := api.BuildFetchStreamInfo(ctx, config.StreamID)
		if err != nil {
			return err
		}
		curlCmd, err := formatCurl(req)
		if err != nil {
			return err
		}

		fmt.Println(curlCmd)

		return nil
	}

	stream, err := apiClient.FetchStreamInfo(ctx, config.StreamID)
	if err != nil {
		return err
	}

	fmt.Printf("ID:            %s\n", stream.ID)
	fmt.Printf("Name:          %s\n", stream.Name)
	fmt.Printf("Account:       %s\n", stream.AccountID)
	fmt.Printf("One msg/key:   %t\n", stream.OneMessagePerKey)
	fmt.Printf("Consumers:     %d\n", stream.Stats.ConsumerCount)
	fmt.Printf("Messages:      %d\n", stream.Stats.MessageCount)
	fmt.Printf("Storage size:  %s\n", humanize.IBytes(uint64(stream.Stats.StorageSize)))
	fmt.Printf("Created at:    %s\n", formatTimestamp(stream.CreatedAt.Time))

	return nil
}

func streamAdd(_ *fisk.ParseContext, config *Config, s *StreamConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	options := &api.StreamCreateOptions{
		OneMessagePerKey: s.OneMessagePerKey,
		MaxStorageGB:     s.MaxStorageGB,
	}

	if config.AsCurl {
		req, err := api.BuildAddStream(ctx, s.Name, options)
		if err != nil {
			return err
		}
		curlCmd, err := formatCurl(req)
		if err != nil {
			return err
		}

		fmt.Println(curlCmd)

		return nil
	}

	stream, err := apiClient.AddStream(ctx, s.Name, options)
	if err != nil {
		return err
	}

	fmt.Printf("Stream %s created (ID: %s)\n", stream.Name, stream.ID)
	return nil
}

func streamRm(_ *fisk.ParseContext, config *Config, s *StreamConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if config.AsCurl {
		req, err := api.BuildRemoveStream(ctx, config.StreamID)
		if err != nil {
			return err
		}
		curlCmd, err := formatCurl(req)
		if err != nil {
			return err
		}

		fmt.Println(curlCmd)

		return nil
	}

	if !s.Force {
		ok, err := askConfirmation(fmt.Sprintf("Really remove stream %s?", config.StreamID), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	deleted, err := apiClient.RemoveStream(ctx, config.StreamID)
	if err != nil {
		return err
	}

	fmt.Printf("Stream %s has been removed\n", deleted.ID)
	return nil
}

func streamSend(_ *fisk.ParseContext, config *Config, s *StreamConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if config.AsCurl {
		req, err := api.BuildPublishMessages(ctx, config.StreamID, []api.MessagePayload{{Key: s.Key, Data: s.Data}})
		if err != nil {
			return err
		}
		curlCmd, err := formatCurl(req)
		if err != nil {
			return err
		}

		fmt.Println(curlCmd)

		return nil
	}

	err = apiClient.PublishMessage(ctx, config.StreamID, s.Key, s.Data)
	if err != nil {
		return err
	}

	fmt.Printf("Message sent to stream %s with key %s\n", config.StreamID, s.Key)
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(time.RFC3339)
}
