package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/julesChu12/rsmq"
)

var createQueueCmd = &cobra.Command{
	Use:   "create-queue <name>",
	Short: "Create a new queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		client, err := newQueueClient(ctx, settings)
		if err != nil {
			return err
		}
		defer client.Close()

		opts, err := queueOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		if err := client.CreateQueue(ctx, args[0], opts...); err != nil {
			return err
		}
		fmt.Printf("queue %q created\n", args[0])
		return nil
	},
}

var deleteQueueCmd = &cobra.Command{
	Use:   "delete-queue <name>",
	Short: "Delete a queue and every message in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		client, err := newQueueClient(ctx, settings)
		if err != nil {
			return err
		}
		defer client.Close()

		lockClient := newLockClient(settings)
		defer lockClient.Close()

		err = lockClient.WithLock(ctx, lockKeyForQueue(settings, args[0]), func() error {
			return client.DeleteQueue(ctx, args[0])
		})
		if err != nil {
			return err
		}
		fmt.Printf("queue %q deleted\n", args[0])
		return nil
	},
}

var listQueuesCmd = &cobra.Command{
	Use:   "list-queues",
	Short: "List every queue in the namespace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		client, err := newQueueClient(ctx, settings)
		if err != nil {
			return err
		}
		defer client.Close()

		names, err := client.ListQueues(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var attrsCmd = &cobra.Command{
	Use:   "attrs <name>",
	Short: "Print a queue's attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		client, err := newQueueClient(ctx, settings)
		if err != nil {
			return err
		}
		defer client.Close()

		attrs, err := client.GetQueueAttributes(ctx, args[0])
		if err != nil {
			return err
		}
		printAttrs(attrs)
		return nil
	},
}

var setAttrsCmd = &cobra.Command{
	Use:   "set-attrs <name>",
	Short: "Update a queue's visibility timeout, delay or max message size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		ctx := context.Background()
		client, err := newQueueClient(ctx, settings)
		if err != nil {
			return err
		}
		defer client.Close()

		opts, err := queueOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		attrs, err := client.SetQueueAttributes(ctx, args[0], opts...)
		if err != nil {
			return err
		}
		printAttrs(attrs)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{createQueueCmd, setAttrsCmd} {
		cmd.Flags().Duration("vt", 0, "visibility timeout (e.g. 30s); omit to leave the queue default")
		cmd.Flags().Duration("delay", 0, "default send delay (e.g. 5s); omit to leave the queue default")
		cmd.Flags().Int64("maxsize", 0, "maximum message size in bytes, or -1 for unlimited; omit to leave the queue default")
	}

	rootCmd.AddCommand(createQueueCmd, deleteQueueCmd, listQueuesCmd, attrsCmd, setAttrsCmd)
}

func queueOptionsFromFlags(cmd *cobra.Command) ([]rsmq.QueueOption, error) {
	var opts []rsmq.QueueOption

	if vt, _ := cmd.Flags().GetDuration("vt"); cmd.Flags().Changed("vt") {
		opts = append(opts, rsmq.WithVisibilityTimeout(vt))
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); cmd.Flags().Changed("delay") {
		opts = append(opts, rsmq.WithDelay(delay))
	}
	if maxsize, _ := cmd.Flags().GetInt64("maxsize"); cmd.Flags().Changed("maxsize") {
		opts = append(opts, rsmq.WithMaxSize(maxsize))
	}

	return opts, nil
}

func printAttrs(a *rsmq.QueueAttributes) {
	fmt.Printf("visibility timeout: %s\n", a.VisibilityTimeout)
	fmt.Printf("delay:              %s\n", a.Delay)
	fmt.Printf("max size:           %d\n", a.MaxSize)
	fmt.Printf("messages:           %d\n", a.Messages)
	fmt.Printf("hidden messages:    %d\n", a.HiddenMessages)
	fmt.Printf("total sent:         %d\n", a.TotalSent)
	fmt.Printf("total received:     %d\n", a.TotalReceived)
	fmt.Printf("created:            %s\n", a.Created.Format(time.RFC3339))
	fmt.Printf("modified:           %s\n", a.Modified.Format(time.RFC3339))
}
