package cli

import (
	"fmt"

	"github.com/choria-io/fisk"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sequinstream/sequin-go/api"
	"github.com/sequinstream/sequin-go/context"
)

type ConsumerConfig struct {
	Name             string
	FilterKeyPattern string
	AckWaitMS        int
	MaxAckPending    int
	MaxDeliver       int
	BatchSize        int
	AckIDs           []string
	Force            bool
}

// AddConsumerCommands adds all consumer-related commands to the given app
func AddConsumerCommands(app *fisk.Application, config *Config, apiClient api.API) {
	consumer := app.Command("consumer", "Consumer related commands").Alias("con").Alias("c")

	c := &ConsumerConfig{}

	lsCmd := consumer.Command("ls", "List consumers for a stream").Action(func(pc *fisk.ParseContext) error {
		return consumerLs(pc, config, apiClient)
	})
	lsCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)

	infoCmd := consumer.Command("info", "Show consumer info").Action(func(pc *fisk.ParseContext) error {
		return consumerInfo(pc, config, apiClient)
	})
	infoCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)
	infoCmd.Arg("consumer", "ID or name of the consumer").Required().StringVar(&config.ConsumerID)

	addCmd := consumer.Command("add", "Add a new consumer").Action(func(pc *fisk.ParseContext) error {
		return consumerAdd(pc, config, c, apiClient)
	})
	addCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)
	addCmd.Arg("name", "Name of the consumer").Required().StringVar(&c.Name)
	addCmd.Arg("filter", "Filter key pattern, e.g. orders.>").Required().StringVar(&c.FilterKeyPattern)
	addCmd.Flag("ack-wait-ms", "Acknowledgement wait time in milliseconds").IntVar(&c.AckWaitMS)
	addCmd.Flag("max-ack-pending", "Maximum pending acknowledgements").IntVar(&c.MaxAckPending)
	addCmd.Flag("max-deliver", "Maximum delivery attempts").IntVar(&c.MaxDeliver)

	rmCmd := consumer.Command("rm", "Remove a consumer").Action(func(pc *fisk.ParseContext) error {
		return consumerRm(pc, config, c, apiClient)
	})
	rmCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)
	rmCmd.Arg("consumer", "ID or name of the consumer").Required().StringVar(&config.ConsumerID)
	rmCmd.Flag("force", "Skip confirmation prompt").BoolVar(&c.Force)

	receiveCmd := consumer.Command("receive", "Receive the next batch of messages").Alias("next").Action(func(pc *fisk.ParseContext) error {
		return consumerReceive(pc, config, c, apiClient)
	})
	receiveCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)
	receiveCmd.Arg("consumer", "ID or name of the consumer").Required().StringVar(&config.ConsumerID)
	receiveCmd.Flag("batch-size", "Number of messages to receive").Default("10").IntVar(&c.BatchSize)

	ackCmd := consumer.Command("ack", "Acknowledge messages").Action(func(pc *fisk.ParseContext) error {
		return consumerAck(pc, config, c, apiClient)
	})
	ackCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)
	ackCmd.Arg("consumer", "ID or name of the consumer").Required().StringVar(&config.ConsumerID)
	ackCmd.Arg("ack-ids", "Ack IDs to acknowledge").Required().StringsVar(&c.AckIDs)

	nackCmd := consumer.Command("nack", "Mark messages for redelivery").Action(func(pc *fisk.ParseContext) error {
		return consumerNack(pc, config, c, apiClient)
	})
	nackCmd.Arg("stream", "ID or name of the stream").Required().StringVar(&config.StreamID)
	nackCmd.Arg("consumer", "ID or name of the consumer").Required().StringVar(&config.ConsumerID)
	nackCmd.Arg("ack-ids", "Ack IDs to nack").Required().StringsVar(&c.AckIDs)
}

func consumerLs(_ *fisk.ParseContext, config *Config, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if config.AsCurl {
		req, err := api.BuildFetchConsumers(ctx, config.StreamID)
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

	consumers, err := apiClient.FetchConsumers(ctx, config.StreamID)
	if err != nil {
		return err
	}

	if len(consumers) == 0 {
		fmt.Println("No consumers defined")
		return nil
	}

	writer := newTableWriter("Consumers for stream %s", config.StreamID)
	writer.AppendHeader(table.Row{"ID", "Name", "Filter", "Ack Wait (ms)", "Max Pending", "Max Deliver", "Status"})
	for _, c := range consumers {
		writer.AppendRow(table.Row{
			c.ID,
			c.Name,
			c.FilterKeyPattern,
			c.AckWaitMS,
			c.MaxAckPending,
			c.MaxDeliver,
			c.Status,
		})
	}
	fmt.Println(writer.Render())

	return nil
}

func consumerInfo(_ *fisk.ParseContext, config *Config, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	consumer, err := apiClient.FetchConsumerInfo(ctx, config.StreamID, config.ConsumerID)
	if err != nil {
		return err
	}

	fmt.Printf("ID:               %s\n", consumer.ID)
	fmt.Printf("Name:             %s\n", consumer.Name)
	fmt.Printf("Stream:           %s\n", consumer.StreamID)
	fmt.Printf("Filter:           %s\n", consumer.FilterKeyPattern)
	fmt.Printf("Ack wait (ms):    %d\n", consumer.AckWaitMS)
	fmt.Printf("Max ack pending:  %d\n", consumer.MaxAckPending)
	fmt.Printf("Max deliver:      %d\n", consumer.MaxDeliver)
	fmt.Printf("Status:           %s\n", consumer.Status)

	return nil
}

func consumerAdd(_ *fisk.ParseContext, config *Config, c *ConsumerConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	options := api.ConsumerCreateOptions{
		StreamID:         config.StreamID,
		Name:             c.Name,
		FilterKeyPattern: c.FilterKeyPattern,
		AckWaitMS:        c.AckWaitMS,
		MaxAckPending:    c.MaxAckPending,
		MaxDeliver:       c.MaxDeliver,
	}

	if config.AsCurl {
		req, err := api.BuildAddConsumer(ctx, options)
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

	consumer, err := apiClient.AddConsumer(ctx, options)
	if err != nil {
		return err
	}

	fmt.Printf("Consumer %s created (ID: %s)\n", consumer.Name, consumer.ID)
	return nil
}

func consumerRm(_ *fisk.ParseContext, config *Config, c *ConsumerConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if !c.Force {
		ok, err := askConfirmation(fmt.Sprintf("Really remove consumer %s?", config.ConsumerID), false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted")
			return nil
		}
	}

	err = apiClient.RemoveConsumer(ctx, config.StreamID, config.ConsumerID)
	if err != nil {
		return err
	}

	fmt.Printf("Consumer %s has been removed\n", config.ConsumerID)
	return nil
}

func consumerReceive(_ *fisk.ParseContext, config *Config, c *ConsumerConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	if config.AsCurl {
		req, err := api.BuildReceiveMessages(ctx, config.StreamID, config.ConsumerID, c.BatchSize)
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

	messages, err := apiClient.ReceiveMessages(ctx, config.StreamID, config.ConsumerID, c.BatchSize)
	if err != nil {
		return err
	}

	if len(messages) == 0 {
		fmt.Println("No messages available")
		return nil
	}

	writer := newTableWriter("Received %d message(s)", len(messages))
	writer.AppendHeader(table.Row{"Seq", "Key", "Data", "Ack ID"})
	for _, m := range messages {
		writer.AppendRow(table.Row{m.Message.Seq, m.Message.Key, m.Message.Data, m.AckID})
	}
	fmt.Println(writer.Render())

	return nil
}

func consumerAck(_ *fisk.ParseContext, config *Config, c *ConsumerConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	err = apiClient.AckMessages(ctx, config.StreamID, config.ConsumerID, c.AckIDs)
	if err != nil {
		return err
	}

	fmt.Printf("Acknowledged %d message(s)\n", len(c.AckIDs))
	return nil
}

func consumerNack(_ *fisk.ParseContext, config *Config, c *ConsumerConfig, apiClient api.API) error {
	ctx, err := context.LoadContext(config.ContextName)
	if err != nil {
		return err
	}

	err = apiClient.NackMessages(ctx, config.StreamID, config.ConsumerID, c.AckIDs)
	if err != nil {
		return err
	}

	fmt.Printf("Marked %d message(s) for redelivery\n", len(c.AckIDs))
	return nil
}
