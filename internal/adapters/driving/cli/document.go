package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List or remove indexed documents, or clear the whole index.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every document from the index",
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

// clearForce skips the confirmation prompt.
var clearForce bool

func init() {
	documentClearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "clear without confirmation")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	documentCmd.AddCommand(documentClearCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	docs, err := engine.Documents(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	cmd.Println("Indexed documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Name:     %s\n", docs[i].FileName)
		cmd.Printf("    Type:     %s\n", docs[i].FileType)
		cmd.Printf("    Status:   %s\n", docs[i].Status)
		cmd.Printf("    Chunks:   %d\n", len(docs[i].Chunks))
		cmd.Printf("    Ingested: %s\n", docs[i].IngestedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	docID := args[0]
	if err := engine.Remove(context.Background(), docID); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	cmd.Printf("Removed: %s\n", docID)
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	if !clearForce {
		cmd.Println("This removes every indexed document. Re-run with --force to confirm.")
		return nil
	}

	if err := engine.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	cmd.Println("Index cleared.")
	return nil
}
