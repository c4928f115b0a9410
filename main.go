package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lumenworks/imageproc/cmd"
)

func main() {
	var port int
	var maxDimension int
	var quality int
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// The PORT env var wins over the flag default; the deployment wrapper
	// sets it and expects it to be honored.
	defaultPort := 5000
	if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
		defaultPort = p
	}

	rootCmd := &cobra.Command{
		Use:  "imageproc",
		Long: `Image processing service: convolution, color, and geometric transforms over HTTP`,
	}

	serveCmd := &cobra.Command{
		Use:   "serve [--port <port>] [--max-dimension <px>] [--quality <q>] [--debug]",
		Short: "Start the HTTP processing server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.Serve(port, maxDimension, quality, debug)
		},
	}

	serveCmd.Flags().IntVar(&port, "port", defaultPort, "Port to run the HTTP server on")
	serveCmd.Flags().IntVar(&maxDimension, "max-dimension", 0, "Downscale uploads so neither side exceeds this (0 disables)")
	serveCmd.Flags().IntVar(&quality, "quality", 85, "JPEG quality of processed responses")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
