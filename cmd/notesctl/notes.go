package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/client"
	"github.com/notewell/notewell/internal/model"
)

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, string(b))
	return nil
}

// parseTags turns "book,recommended_by=sam" into a tag set.
func parseTags(raw string) ([]model.Tag, error) {
	if raw == "" {
		return nil, nil
	}
	var tags []model.Tag
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var t model.Tag
		if kind, value, found := strings.Cut(part, "="); found {
			t = model.NewParamTag(model.TagKind(kind), value)
		} else {
			t = model.NewTag(model.TagKind(part))
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

func init() {
	notesCmd := &cobra.Command{Use: "notes", Short: "Note operations"}

	var title, description, owner, tagsFlag string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := parseTags(tagsFlag)
			if err != nil {
				return err
			}
			resp, err := client.New(apiFlag).CreateNote(context.Background(), model.CreateNoteRequest{
				Title:       title,
				Description: description,
				Owner:       owner,
				Tags:        tags,
			})
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Note title (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Note description")
	createCmd.Flags().StringVarP(&owner, "owner", "o", "", "Note owner (required)")
	createCmd.Flags().StringVar(&tagsFlag, "tags", "", "Comma-separated tags, e.g. book,recommended_by=sam")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("owner")
	notesCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get NOTE_ID",
		Short: "Get a note by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.New(apiFlag).GetNote(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	notesCmd.AddCommand(getCmd)

	listCmd := &cobra.Command{
		Use:   "list OWNER",
		Short: "List all notes for an owner, archived included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.New(apiFlag).GetNotes(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	notesCmd.AddCommand(listCmd)

	var upTitle, upDescription, upTags string
	updateCmd := &cobra.Command{
		Use:   "update NOTE_ID",
		Short: "Update the provided fields of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.UpdateNoteRequest{NoteID: args[0]}
			if cmd.Flags().Changed("title") {
				req.Title = &upTitle
			}
			if cmd.Flags().Changed("description") {
				req.Description = &upDescription
			}
			if cmd.Flags().Changed("tags") {
				tags, err := parseTags(upTags)
				if err != nil {
					return err
				}
				if tags == nil {
					tags = []model.Tag{}
				}
				req.Tags = &tags
			}
			resp, err := client.New(apiFlag).UpdateNote(context.Background(), req)
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	updateCmd.Flags().StringVarP(&upTitle, "title", "t", "", "New title")
	updateCmd.Flags().StringVarP(&upDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVar(&upTags, "tags", "", "Replacement tag set")
	notesCmd.AddCommand(updateCmd)

	archiveCmd := &cobra.Command{
		Use:   "archive NOTE_ID",
		Short: "Archive a note (terminal, cannot be undone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := client.New(apiFlag).ArchiveNote(context.Background(), args[0])
			if err != nil {
				return err
			}
			return printJSON(resp)
		},
	}
	notesCmd.AddCommand(archiveCmd)

	rootCmd.AddCommand(notesCmd)
}
