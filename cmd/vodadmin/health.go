package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// healthReport is the body of the panel's /healthz.
type healthReport struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

func newHealthCommand(cc *commandContext) *cobra.Command {
	var target string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe a running admin panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				target = localURL(cc.cfg.Server.Addr)
			}
			client := &http.Client{Timeout: timeout}
			rep, latency, err := probe(cmd.Context(), client, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s backend=%s latency=%dms\n", rep.Status, rep.Backend, latency)
			if rep.Status != "ok" {
				return fmt.Errorf("panel is %s", rep.Status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "Panel base URL (default derived from server.addr)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "Probe timeout")
	return cmd
}

// localURL turns a listen address such as ":8081" into a URL on loopback.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func probe(ctx context.Context, client *http.Client, base string) (healthReport, int64, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+"/healthz", nil)
	if err != nil {
		return healthReport{}, 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return healthReport{}, 0, fmt.Errorf("probe %s: %w", base, err)
	}
	defer resp.Body.Close()
	latency := time.Since(start).Milliseconds()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return healthReport{}, latency, fmt.Errorf("read health: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return healthReport{}, latency, fmt.Errorf("probe %s: status %d", base, resp.StatusCode)
	}
	var rep healthReport
	if err := json.Unmarshal(body, &rep); err != nil {
		return healthReport{}, latency, fmt.Errorf("decode health: %w", err)
	}
	return rep, latency, nil
}
