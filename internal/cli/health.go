package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/lrview/internal/client"
)

func newHealthCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(timeout)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			start := time.Now()
			if err := c.HealthCheck(ctx); err != nil {
				printf(cmd.OutOrStdout(), "%s %s: %s\n", symbol("error"), c.Endpoint(), client.UserMessage(err))
				return fmt.Errorf("service unhealthy: %w", err)
			}
			printf(cmd.OutOrStdout(), "%s %s is healthy (%s)\n", symbol("health"), c.Endpoint(),
				time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "health check timeout")
	return cmd
}
