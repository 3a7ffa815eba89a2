// Command pingpong exercises the tagfabric transport: a receive-side sink, a
// send-side pinger, and an in-process loop mode that runs both sides and
// reports round-trip timings.
//
// Addresses are printed and accepted as hex strings; move them between the
// two sides however you like (that is the rendezvous channel's job).
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/tagfabric/transport"
)

const (
	tagPing = 1
	tagPong = 2
)

var (
	msgSize int
	rounds  int
	verbose bool

	header = color.New(color.FgCyan, color.Bold)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
)

func main() {
	root := &cobra.Command{
		Use:   "pingpong",
		Short: "tagfabric transport demo and self-test",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				lg, err := zap.NewDevelopment()
				if err == nil {
					transport.SetLogger(lg)
				}
			}
		},
	}
	root.PersistentFlags().IntVar(&msgSize, "size", 1024, "payload size in bytes")
	root.PersistentFlags().IntVar(&rounds, "rounds", 100, "number of messages")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable transport debug logging")

	root.AddCommand(serveCmd(), pingCmd(), loopCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "receive messages and print throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := transport.NewWorker()
			if err != nil {
				return err
			}
			defer w.Close()

			header.Println("worker address (give this to the pinger):")
			fmt.Println(hex.EncodeToString(w.Address()))

			buf := make([]byte, msgSize)
			for i := 0; i < rounds; i++ {
				c, err := w.RecvWithTag(buf, msgSize, tagPing, transport.MemoryHost)
				if err != nil {
					return err
				}
				for !c.Completed() {
					w.Progress()
				}
				good.Printf("message %d/%d received (%d bytes)\n", i+1, rounds, msgSize)
			}
			return nil
		},
	}
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping <hex-address>",
		Short: "send messages to a serving worker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("address is not valid hex: %w", err)
			}

			w, err := transport.NewWorker()
			if err != nil {
				return err
			}
			defer w.Close()

			ep, err := w.Connect(transport.Address(peer))
			if err != nil {
				return err
			}
			defer ep.Close()

			payload := make([]byte, msgSize)
			start := time.Now()
			for i := 0; i < rounds; i++ {
				c, err := ep.SendWithTag(payload, msgSize, tagPing, transport.MemoryHost)
				if err != nil {
					return err
				}
				for !c.Completed() {
					w.Progress()
				}
			}
			elapsed := time.Since(start)

			header.Printf("%d messages of %d bytes in %v\n", rounds, msgSize, elapsed)
			good.Printf("%.1f msg/s\n", float64(rounds)/elapsed.Seconds())
			return nil
		},
	}
}

func loopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loop",
		Short: "run both sides in-process and measure round trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := transport.NewWorker()
			if err != nil {
				return err
			}
			defer a.Close()
			b, err := transport.NewWorker()
			if err != nil {
				return err
			}
			defer b.Close()

			epAB, err := a.Connect(b.Address())
			if err != nil {
				return err
			}
			defer epAB.Close()
			epBA, err := b.Connect(a.Address())
			if err != nil {
				return err
			}
			defer epBA.Close()

			ping := make([]byte, msgSize)
			pong := make([]byte, msgSize)
			bufB := make([]byte, msgSize)
			bufA := make([]byte, msgSize)

			var worst time.Duration
			start := time.Now()
			for i := 0; i < rounds; i++ {
				t0 := time.Now()

				rb, err := b.RecvWithTag(bufB, msgSize, tagPing, transport.MemoryHost)
				if err != nil {
					return err
				}
				if _, err := epAB.SendWithTag(ping, msgSize, tagPing, transport.MemoryHost); err != nil {
					return err
				}
				for !rb.Completed() {
					a.Progress()
					b.Progress()
				}

				ra, err := a.RecvWithTag(bufA, msgSize, tagPong, transport.MemoryHost)
				if err != nil {
					return err
				}
				if _, err := epBA.SendWithTag(pong, msgSize, tagPong, transport.MemoryHost); err != nil {
					return err
				}
				for !ra.Completed() {
					a.Progress()
					b.Progress()
				}

				if rt := time.Since(t0); rt > worst {
					worst = rt
				}
			}
			elapsed := time.Since(start)

			header.Printf("%d round trips of %d bytes in %v\n", rounds, msgSize, elapsed)
			good.Printf("mean %v per round trip\n", elapsed/time.Duration(rounds))
			warn.Printf("worst %v\n", worst)
			return nil
		},
	}
}
