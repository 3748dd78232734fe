// Command mdtool runs the blog's markdown utilities on local files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Shiinama/blog-sub000/internal/importer"
	"github.com/Shiinama/blog-sub000/internal/post"
	"github.com/Shiinama/blog-sub000/internal/preview"
	"github.com/Shiinama/blog-sub000/internal/render"
	"github.com/Shiinama/blog-sub000/internal/toc"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mdtool",
		Short:        "Table of contents, paywall previews and rendering for blog posts",
		SilenceUsage: true,
	}
	root.AddCommand(
		newTOCCmd(),
		newPreviewCmd(),
		newRenderCmd(),
		newAuditCmd(),
		newImportCmd(),
	)
	return root
}

func newTOCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toc FILE",
		Short: "Print the table of contents of a markdown file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := post.Parse(src)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), toc.Build(p.Content))
		},
	}
}

func newPreviewCmd() *cobra.Command {
	var ratio float64
	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Print the paywall preview of a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := post.Parse(src)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), preview.Build(p.Content, ratio))
			return err
		},
	}
	cmd.Flags().Float64Var(&ratio, "ratio", preview.DefaultRatio, "share of words to keep")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		viewer     post.Viewer
		locale     string
		defLocale  string
		locales    []string
		unsafeHTML bool
		ratio      float64
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a post to a page as a reader would see it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := post.Parse(src)
			if err != nil {
				return err
			}
			if p.Locale == "" {
				p.Locale = locale
			}
			a := &post.Assembler{
				Renderer:     newRenderer(unsafeHTML),
				Locales:      post.NewLocales(defLocale, locales),
				PreviewRatio: ratio,
			}
			page, err := a.Assemble(p, viewer)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().BoolVar(&viewer.Subscribed, "subscribed", false, "render for a subscriber")
	cmd.Flags().BoolVar(&viewer.Admin, "admin", false, "render for an admin")
	cmd.Flags().StringVar(&locale, "locale", "", "locale when the post does not declare one")
	cmd.Flags().StringVar(&defLocale, "default-locale", "en", "locale served without a path prefix")
	cmd.Flags().StringSliceVar(&locales, "locales", []string{"en", "zh"}, "supported locales")
	cmd.Flags().BoolVar(&unsafeHTML, "unsafe-html", false, "pass raw HTML through")
	cmd.Flags().Float64Var(&ratio, "ratio", preview.DefaultRatio, "preview share for gated readers")
	return cmd
}

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit FILE",
		Short: "Check that every TOC link resolves to a heading id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := post.Parse(src)
			if err != nil {
				return err
			}
			missing, err := render.New().Audit(p.Content)
			if err != nil {
				return err
			}
			for _, m := range missing {
				fmt.Fprintln(cmd.ErrOrStderr(), "unresolved:", m)
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d unresolved toc links", len(missing))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	var pdftotext bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Convert a txt, html, csv, docx or pdf document into a markdown draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			draft, err := importer.Import(f, args[0], importer.Options{PDFFallbackPdftotext: pdftotext})
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), draft.Markdown)
			return err
		},
	}
	cmd.Flags().BoolVar(&pdftotext, "pdftotext", true, "fall back to pdftotext for PDFs")
	return cmd
}

func newRenderer(unsafeHTML bool) *render.Renderer {
	if unsafeHTML {
		return render.New(render.WithUnsafeHTML())
	}
	return render.New()
}

// readInput reads a file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
