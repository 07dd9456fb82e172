package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julesChu12/rsmq"
)

var sendCmd = &cobra.Command{
	Use:   "send <queue> <message>",
	Short: "Send a message to a queue",
	Args:  cobra.ExactArgs(2),
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

		var opts []rsmq.SendOption
		if delay, _ := cmd.Flags().GetDuration("delay"); cmd.Flags().Changed("delay") {
			opts = append(opts, rsmq.WithSendDelay(delay))
		}

		id, err := client.SendMessage(ctx, args[0], args[1], opts...)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

var receiveCmd = &cobra.Command{
	Use:   "receive <queue>",
	Short: "Receive the oldest visible message, hiding it for the visibility timeout",
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

		var opts []rsmq.ReceiveOption
		if vt, _ := cmd.Flags().GetDuration("vt"); cmd.Flags().Changed("vt") {
			opts = append(opts, rsmq.WithVisibilityOverride(vt))
		}

		msg, err := client.ReceiveMessage(ctx, args[0], opts...)
		if err != nil {
			return err
		}
		printMessage(msg)
		return nil
	},
}

var popCmd = &cobra.Command{
	Use:   "pop <queue>",
	Short: "Atomically receive and remove the oldest visible message",
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

		msg, err := client.PopMessage(ctx, args[0])
		if err != nil {
			return err
		}
		printMessage(msg)
		return nil
	},
}

var deleteMessageCmd = &cobra.Command{
	Use:   "delete-message <queue> <id>",
	Short: "Remove a message by id",
	Args:  cobra.ExactArgs(2),
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

		deleted, err := client.DeleteMessage(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(deleted)
		return nil
	},
}

func init() {
	sendCmd.Flags().Duration("delay", 0, "delay before the message becomes visible; omit to use the queue default")
	receiveCmd.Flags().Duration("vt", 0, "visibility timeout override for this receive; omit to use the queue default")

	rootCmd.AddCommand(sendCmd, receiveCmd, popCmd, deleteMessageCmd)
}

func printMessage(msg *rsmq.Message[string]) {
	if msg == nil {
		fmt.Println("(no message available)")
		return
	}
	fmt.Printf("id:            %s\n", msg.ID)
	fmt.Printf("body:          %s\n", msg.Body)
	fmt.Printf("receive count: %d\n", msg.ReceiveCount)
	fmt.Printf("first received: %s\n", msg.FirstReceived)
	fmt.Printf("sent:          %s\n", msg.Sent)
}
