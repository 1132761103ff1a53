package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-catalog-go/app/shell/httpapi"
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

const noLoansLine = "No books are currently on loan."

type appFunc func() (*app, error)

func showCmd(current appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the whole catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := current()
			if err != nil {
				return err
			}

			rendered, err := a.service.Render(cmd.Context())
			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), rendered)

			return err
		},
	}
}

func booksCmd(current appFunc) *cobra.Command {
	var query catalog.BookQuery

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books, optionally filtered by keyword or ISBN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := current()
			if err != nil {
				return err
			}

			books, err := a.service.FindBooks(cmd.Context(), query)
			if err != nil {
				return err
			}

			for _, b := range books {
				fmt.Fprintln(cmd.OutOrStdout(), b.String())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&query.Keyword, "keyword", "", "case-insensitive substring of title or author")
	cmd.Flags().StringVar(&query.ISBN, "isbn", "", "exact ISBN, takes precedence over --keyword")

	return cmd
}

func readersCmd(current appFunc) *cobra.Command {
	var keyword string
	var cardNumber int

	cmd := &cobra.Command{
		Use:   "readers",
		Short: "List registered readers, optionally filtered by keyword or card number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := current()
			if err != nil {
				return err
			}

			query := catalog.ReaderQuery{Keyword: keyword}
			if cmd.Flags().Changed("card") {
				query.CardNumber = &cardNumber
			}

			readers, err := a.service.FindReaders(cmd.Context(), query)
			if err != nil {
				return err
			}

			for _, r := range readers {
				fmt.Fprintln(cmd.OutOrStdout(), r.String())
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "case-insensitive substring of first or last name")
	cmd.Flags().IntVar(&cardNumber, "card", 0, "exact card number, takes precedence over --keyword")

	return cmd
}

func loansCmd(current appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "loans",
		Short: "List active loans in the order they were made",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := current()
			if err != nil {
				return err
			}

			loans, err := a.service.Loans(cmd.Context())
			if err != nil {
				return err
			}

			if len(loans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), noLoansLine)
				return nil
			}

			for _, l := range loans {
				fmt.Fprintln(cmd.OutOrStdout(), l.String())
			}

			return nil
		},
	}
}

func serveCmd(current appFunc) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := current()
			if err != nil {
				return err
			}

			serverCfg := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				serverCfg.Addr = addr
			}

			server, err := httpapi.NewServer(a.service, serverCfg, httpapi.WithLogger(a.logger))
			if err != nil {
				return err
			}

			return server.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}
