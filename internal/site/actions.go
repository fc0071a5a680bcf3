// Package site renders the whole course to static HTML files.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"

	"github.com/urfave/cli/v2"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/internal/common"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/course"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/detector"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/links"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/preview"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/renderer"
)

var chapterQuery = regexp.MustCompile(`\?kapitel=(\d+\.\d+)`)

// RenderAction writes one page per chapter plus an index to the output
// directory. A manifest failure is fatal here, same as at server
// startup; per-chapter failures land in the page as inline error blocks.
func RenderAction(c *cli.Context) error {
	env, err := common.Setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	outDir := c.String("output-dir")
	if outDir == "" {
		outDir = "site"
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cfg, err := env.Loader.LoadConfig(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load course manifest: %w", err)
	}

	rend := renderer.New(env.Cfg.Container)
	det := detector.New()
	previews := make(map[string]string, len(cfg.Chapters))

	for i, ch := range cfg.Chapters {
		sel, err := env.Loader.SelectChapter(c.Context, ch.ID)
		if err != nil {
			return fmt.Errorf("failed to select chapter %s: %w", ch.ID, err)
		}
		previews[ch.ID] = preview.Excerpt(sel.Content)

		body := links.Process(sel.Content, links.Options{StripScripts: env.Cfg.StripScripts})
		exercise := links.Process(sel.Exercise, links.Options{StripScripts: env.Cfg.StripScripts})

		data := renderer.PageData{
			Course:       cfg,
			TOC:          renderer.BuildTOC(cfg, ch.ID, previews),
			TotalMinutes: course.TotalMinutes(cfg.Chapters),
			Active: &renderer.ChapterView{
				Chapter:   sel.Chapter,
				TypeLabel: renderer.TypeLabel(sel.Chapter.Type),
				Lang:      det.Code(previews[ch.ID], "de"),
				Content:   template.HTML(body),
				Exercise:  template.HTML(exercise),
			},
		}

		var buf bytes.Buffer
		if err := rend.WritePage(&buf, data); err != nil {
			return fmt.Errorf("failed to render chapter %s: %w", ch.ID, err)
		}
		// Static pages have no query handler; turn in-page navigation
		// into file links.
		page := chapterQuery.ReplaceAll(buf.Bytes(), []byte("kapitel-$1.html"))

		name := fmt.Sprintf("kapitel-%s.html", ch.ID)
		if err := os.WriteFile(filepath.Join(outDir, name), page, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if i == 0 {
			if err := os.WriteFile(filepath.Join(outDir, "index.html"), page, 0644); err != nil {
				return fmt.Errorf("failed to write index.html: %w", err)
			}
		}
		env.Logger.Info("chapter rendered", "chapter", ch.ID, "file", name)
	}

	env.Logger.Info("course rendered", "chapters", len(cfg.Chapters), "output_dir", outDir)
	return nil
}
