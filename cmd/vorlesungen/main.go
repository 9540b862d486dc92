package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jipsifred/Vorlesungen/internal/app"
	"github.com/jipsifred/Vorlesungen/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config, creates an App, and enforces the session
// gate. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "CreateFolder").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	if err := a.RequireUnlock(); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func formatCreatedAt(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

var rootCmd = &cobra.Command{
	Use:   "vorlesungen",
	Short: "Study library for annotated lecture PDFs",
}

// config command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s\n", cfg.Database.Type)
		fmt.Printf("Blob store: %s\n", cfg.Blob.Type)
		return nil
	},
}

// folder command

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders (courses)",
}

var folderCreateCmd = &cobra.Command{
	Use:   "create TITLE",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		a, err := newApp("CreateFolder")
		if err != nil {
			return err
		}
		defer a.Close()

		folder, err := a.CreateFolder(cmd.Context(), args[0], description)
		if err != nil {
			return err
		}

		fmt.Printf("Created folder %s (%s)\n", folder.Title, folder.ID)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Folders")
		if err != nil {
			return err
		}
		defer a.Close()

		folders, err := a.Folders(cmd.Context())
		if err != nil {
			return err
		}

		if len(folders) == 0 {
			fmt.Println("No folders.")
			return nil
		}

		for _, f := range folders {
			fmt.Printf("%s  %s  %s\n", f.ID, formatCreatedAt(f.CreatedAt), f.Title)
		}
		return nil
	},
}

var folderDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a folder and all its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteFolder")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteFolder(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted folder %s\n", args[0])
		return nil
	},
}

// doc command

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage documents (lectures)",
}

var docAddCmd = &cobra.Command{
	Use:   "add FOLDER_ID TITLE ANNOTATION.json LECTURE.pdf",
	Short: "Add a document to a folder",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddDocument")
		if err != nil {
			return err
		}
		defer a.Close()

		doc, pageCount, err := a.AddDocument(cmd.Context(), args[0], args[1], args[2], args[3])
		if err != nil {
			return err
		}

		fmt.Printf("Created document %s (%s)\n", doc.Title, doc.ID)
		fmt.Printf("Annotation pages: %d\n", len(doc.Annotation.Pages))
		if pageCount > 0 {
			fmt.Printf("PDF pages: %d\n", pageCount)
		}
		return nil
	},
}

var docListCmd = &cobra.Command{
	Use:   "list FOLDER_ID",
	Short: "List a folder's documents, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Documents")
		if err != nil {
			return err
		}
		defer a.Close()

		docs, err := a.Documents(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if len(docs) == 0 {
			fmt.Println("No documents.")
			return nil
		}

		for _, d := range docs {
			fmt.Printf("%s  %s  %s\n", d.ID, formatCreatedAt(d.CreatedAt), d.Title)
		}
		return nil
	},
}

var docShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetDocument")
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.Document(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if doc == nil {
			fmt.Println("Document not found.")
			return nil
		}

		fmt.Printf("Title:    %s\n", doc.Title)
		fmt.Printf("Folder:   %s\n", doc.FolderID)
		fmt.Printf("Created:  %s\n", formatCreatedAt(doc.CreatedAt))
		fmt.Printf("PDF:      %s\n", doc.PDFLocator)
		if doc.Annotation.LectureTitle != "" {
			fmt.Printf("Lecture:  %s\n", doc.Annotation.LectureTitle)
		}
		fmt.Printf("Pages:    %d\n", len(doc.Annotation.Pages))
		for _, p := range doc.Annotation.Pages {
			summary := p.TopicSummary
			if summary == "" {
				summary = "-"
			}
			fmt.Printf("  %4d  %s\n", p.PageNumber, summary)
		}
		return nil
	},
}

var docDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteDocument")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.DeleteDocument(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted document %s\n", args[0])
		return nil
	},
}

var docExportCmd = &cobra.Command{
	Use:   "export ID DEST.pdf",
	Short: "Export a document's PDF",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportPDF")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.ExportPDF(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d bytes to %s\n", n, args[1])
		return nil
	},
}

// page command

var pageCmd = &cobra.Command{
	Use:   "page DOC_ID PAGE",
	Short: "Show the notes for one page of a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid page number: %s", args[1])
		}

		a, err := newApp("GetPage")
		if err != nil {
			return err
		}
		defer a.Close()

		page, found, err := a.Page(cmd.Context(), args[0], n)
		if err != nil {
			return err
		}
		if !found {
			fmt.Println("Document not found.")
			return nil
		}
		if page == nil {
			fmt.Printf("No notes for page %d.\n", n)
			return nil
		}

		fmt.Printf("Page %d", page.PageNumber)
		if page.TopicSummary != "" {
			fmt.Printf(": %s", page.TopicSummary)
		}
		fmt.Println()
		fmt.Println(page.Content)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	folderCreateCmd.Flags().StringP("description", "d", "", "Folder description")
	folderCmd.AddCommand(folderCreateCmd)
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderDeleteCmd)

	docCmd.AddCommand(docAddCmd)
	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docShowCmd)
	docCmd.AddCommand(docDeleteCmd)
	docCmd.AddCommand(docExportCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(docCmd)
	rootCmd.AddCommand(pageCmd)
}
