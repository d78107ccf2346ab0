package main

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/client"
	"github.com/notewell/notewell/internal/model"
)

func init() {
	listsCmd := &cobra.Command{Use: "lists", Short: "List operations"}

	getCmd := &cobra.Command{
		Use:   "get OWNER",
		Short: "Get all lists for an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.New(apiFlag).GetLists(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	listsCmd.AddCommand(getCmd)

	fullCmd := &cobra.Command{
		Use:   "full LIST_ID",
		Short: "Get a list with every referenced note resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.New(apiFlag).GetFullList(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	listsCmd.AddCommand(fullCmd)

	var id, title, description, owner, notesFlag string
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Create or replace a list wholesale",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = uuid.New().String()
			}
			var noteIDs []string
			if notesFlag != "" {
				for _, n := range strings.Split(notesFlag, ",") {
					if n = strings.TrimSpace(n); n != "" {
						noteIDs = append(noteIDs, n)
					}
				}
			}
			resp, err := client.New(apiFlag).StoreList(context.Background(), &model.List{
				ID:          id,
				Title:       title,
				Owner:       owner,
				Description: description,
				NoteIDs:     noteIDs,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	storeCmd.Flags().StringVar(&id, "id", "", "List id (generated when omitted)")
	storeCmd.Flags().StringVarP(&title, "title", "t", "", "List title (required)")
	storeCmd.Flags().StringVarP(&description, "description", "d", "", "List description")
	storeCmd.Flags().StringVarP(&owner, "owner", "o", "", "List owner (required)")
	storeCmd.Flags().StringVar(&notesFlag, "notes", "", "Comma-separated note ids, in ranked order")
	_ = storeCmd.MarkFlagRequired("title")
	_ = storeCmd.MarkFlagRequired("owner")
	listsCmd.AddCommand(storeCmd)

	rootCmd.AddCommand(listsCmd)
}
