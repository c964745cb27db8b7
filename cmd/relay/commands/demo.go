package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/relay/pkg/broker"
	"github.com/arthur-debert/relay/pkg/config"
	"github.com/arthur-debert/relay/pkg/events"
	"github.com/arthur-debert/relay/pkg/logging"
)

func newDemoCmd() *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: MsgDemoShort,
		Long:  MsgDemoLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			if failFast {
				cfg.Delivery.Policy = config.PolicyFailFast
			}
			return runDemo(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&failFast, "fail-fast", false, MsgFlagFailFast)
	return cmd
}

func runDemo(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	logger := logging.GetLogger("demo")

	opts := append(cfg.Delivery.Options(), events.WithLogger(logger))
	bus := broker.New[string](opts...)

	fmt.Fprintf(out, "%s\n", formatBoldUpper("subscribing"))
	handles := make(map[string]*events.Registration)
	for _, topic := range cfg.Demo.Topics {
		topic := topic
		for i := 1; i <= 2; i++ {
			name := fmt.Sprintf("%s/%d", topic, i)
			handle := bus.Subscribe(topic, func(msg string) error {
				fmt.Fprintf(out, "    %s <- %q\n", name, msg)
				return nil
			})
			if i == 1 {
				handles[topic] = handle
			}
		}
		fmt.Fprintf(out, "  %s: %d subscribers\n", formatBold(topic), bus.Subscribers(topic))
	}

	fmt.Fprintf(out, "\n%s\n", formatBoldUpper("publishing"))
	for _, topic := range cfg.Demo.Topics {
		fmt.Fprintf(out, "  publish %s %q\n", formatBold(topic), "hello")
		if err := bus.Publish(topic, "hello"); err != nil {
			fmt.Fprintf(out, "    error: %v\n", err)
		}
	}

	// One subscriber per topic unsubscribes; the remaining one still
	// receives the next message.
	fmt.Fprintf(out, "\n%s\n", formatBoldUpper("cancelling one subscriber per topic"))
	for _, topic := range cfg.Demo.Topics {
		handles[topic].Cancel()
		fmt.Fprintf(out, "  %s: %d subscribers left\n", formatBold(topic), bus.Subscribers(topic))
		if err := bus.Publish(topic, "still here"); err != nil {
			fmt.Fprintf(out, "    error: %v\n", err)
		}
	}

	// A faulty subscriber shows the delivery policy in action.
	if len(cfg.Demo.Topics) > 0 {
		topic := cfg.Demo.Topics[0]
		fmt.Fprintf(out, "\n%s\n", formatBoldUpper("handler fault"))
		fmt.Fprintf(out, "  policy: %s\n", cfg.Delivery.Policy)

		bus.Subscribe(topic, func(msg string) error {
			return fmt.Errorf("subscriber rejected %q", msg)
		})

		if err := bus.Publish(topic, "trouble"); err != nil {
			fmt.Fprintf(out, "  publish returned: %v\n", err)
		}
	}

	return nil
}
