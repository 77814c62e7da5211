package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/profiles/metaes/internal/hostenv"
	"github.com/profiles/metaes/internal/interp"
	"github.com/profiles/metaes/internal/remote"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a /eval HTTP endpoint backed by a shared evaluation context",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
}

func runServe(_ *cobra.Command, _ []string) error {
	root := interp.NewEnvironment()
	hostenv.Install(root, os.Stdout)

	ctx := interp.NewContext(root, interp.EvaluationConfig{})
	srv := remote.NewServer(ctx)

	addr := fmt.Sprintf(":%d", servePort)
	fmt.Fprintf(os.Stderr, "listening on %s\n", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
