package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/srvkit/pkg/httpserver"
)

var errBadHeader = errors.New("header must be in Key: Value form")

func newInjectCmd() *cobra.Command {
	var (
		headers []string
		data    string
	)

	cmd := &cobra.Command{
		Use:   "inject METHOD URL",
		Short: "Send a synthetic request through the server without listening",
		Long: `Build the server exactly as serve does, dispatch one request to it in memory
and print the status line and body. Access log lines go to stderr.

Examples:
  srvkit inject GET /healthz
  srvkit inject GET '/echo?hii=hoo' -H 'X-Request-ID: abc'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			hdr, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.adapter.Inject(httpserver.InjectOptions{
				Method: args[0],
				URL:    args[1],
				Header: hdr,
				Body:   []byte(data),
			}).Await()
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "request header in 'Key: Value' form, repeatable")
	cmd.Flags().StringVarP(&data, "data", "d", "", "request body")
	return cmd
}

func parseHeaders(raw []string) (http.Header, error) {
	hdr := http.Header{}
	for _, h := range raw {
		k, v, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: %q", errBadHeader, h)
		}
		hdr.Add(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return hdr, nil
}

func printResponse(w io.Writer, res *httpserver.InjectResponse) error {
	if _, err := fmt.Fprintf(w, "%d %s\n", res.StatusCode, http.StatusText(res.StatusCode)); err != nil {
		return err
	}
	_, err := w.Write(res.Body)
	return err
}
