package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/blog-seo/backend/analyzer"
	"github.com/blog-seo/backend/export"
	"github.com/blog-seo/backend/post"
	"github.com/blog-seo/backend/server"
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func analyzerConfig(c *cli.Context) analyzer.Config {
	return analyzer.Config{
		SiteDomain: c.String("site-domain"),
		SiteName:   c.String("site-name"),
		BaseURL:    c.String("base-url"),
	}
}

func main() {
	loadEnv()

	siteFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "site-domain",
			Usage:   "domain used to classify links as internal",
			EnvVars: []string{"SITE_DOMAIN"},
			Value:   "localhost",
		},
		&cli.StringFlag{
			Name:    "site-name",
			Usage:   "site name used in generated metadata",
			EnvVars: []string{"SITE_NAME"},
			Value:   "Blog",
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "canonical base URL of the site",
			EnvVars: []string{"BASE_URL"},
			Value:   "http://localhost:8082",
		},
		&cli.StringFlag{
			Name:    "content-dir",
			Usage:   "directory containing markdown posts",
			EnvVars: []string{"CONTENT_DIR"},
			Value:   "content",
		},
	}

	app := &cli.App{
		Name:  "blog-seo",
		Usage: "SEO scoring and analysis for blog content",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the analysis HTTP API",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						EnvVars: []string{"PORT"},
						Value:   "8082",
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Usage:   "directory for persisted statistics",
						EnvVars: []string{"DATA_DIR"},
						Value:   "data",
					},
				}, siteFlags...),
				Action: runServe,
			},
			{
				Name:      "analyze",
				Usage:     "analyze a markdown post file or a directory of posts",
				ArgsUsage: "<file-or-directory>",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print full analysis as JSON",
					},
					&cli.IntFlag{
						Name:  "min-score",
						Usage: "only show posts scoring at least this",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "max-score",
						Usage: "only show posts scoring at most this",
						Value: 100,
					},
				}, siteFlags...),
				Action: runAnalyze,
			},
			{
				Name:  "export",
				Usage: "export per-post analysis as CSV plus a summary",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "CSV output path (default stdout)",
					},
					&cli.BoolFlag{
						Name:  "summary",
						Usage: "print the aggregate summary as JSON",
					},
				}, siteFlags...),
				Action: runExport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(c *cli.Context) error {
	setupGinMode()

	srv, err := server.New(server.Config{
		Analyzer:   analyzerConfig(c),
		ContentDir: c.String("content-dir"),
		DataDir:    c.String("data-dir"),
	})
	if err != nil {
		return err
	}
	defer srv.Shutdown()

	return srv.Run(c.String("port"))
}

func loadPosts(c *cli.Context) ([]*post.Post, error) {
	path := c.Args().First()
	if path == "" {
		path = c.String("content-dir")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return post.LoadDir(path)
	}

	p, err := post.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*post.Post{p}, nil
}

func runAnalyze(c *cli.Context) error {
	posts, err := loadPosts(c)
	if err != nil {
		return err
	}

	a := analyzer.New(analyzerConfig(c))
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	for _, p := range posts {
		result := a.Analyze(p.Document())
		if result.Score < c.Int("min-score") || result.Score > c.Int("max-score") {
			continue
		}

		if c.Bool("json") {
			if err := encoder.Encode(map[string]any{
				"slug":     p.Slug,
				"analysis": result,
			}); err != nil {
				return err
			}
			continue
		}

		fmt.Printf("%s: %d/100 (%d words, %s)\n",
			p.Slug, result.Score, result.Basic.WordCount, result.Readability.Level)
		for _, issue := range result.Report.Issues {
			fmt.Printf("  ✗ %s\n", issue)
		}
		for _, practice := range result.Report.GoodPractices {
			fmt.Printf("  ✓ %s\n", practice)
		}
	}

	return nil
}

func runExport(c *cli.Context) error {
	posts, err := loadPosts(c)
	if err != nil {
		return err
	}

	a := analyzer.New(analyzerConfig(c))

	out := os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteCSV(out, a, posts); err != nil {
		return err
	}

	if c.Bool("summary") {
		summary := export.Summarize(a, posts)
		encoder := json.NewEncoder(os.Stderr)
		encoder.SetIndent("", "  ")
		return encoder.Encode(summary)
	}

	return nil
}
