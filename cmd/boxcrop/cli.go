package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/menta2k/boxcrop"
	"github.com/menta2k/boxcrop/internal/config"
	"github.com/menta2k/boxcrop/internal/utils"
	"github.com/menta2k/boxcrop/pkg/document"
	"github.com/menta2k/boxcrop/pkg/export"
	"github.com/menta2k/boxcrop/pkg/template"
)

// cli holds state shared by all commands
type cli struct {
	logger *log.Logger
	out    io.Writer

	configPath   string
	templatePath string
	verbose      bool

	config *config.Config
}

func newCLI(w io.Writer) *cli {
	return &cli{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           log.InfoLevel,
		}),
		out:    w,
		config: config.Default(),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "boxcrop",
		Short:             "Export cropped specimen images and their metadata",
		Version:           boxcrop.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup() },
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default "+config.GetConfigPath()+")")
	flags.StringVarP(&c.templatePath, "template", "t", "", "metadata template YAML file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.SetOut(c.out)
	root.AddCommand(c.cropsCommand())
	root.AddCommand(c.csvCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.exportCommand())

	return root
}

// setup loads the config file and applies the log level
func (c *cli) setup() error {
	path := c.configPath
	if path == "" && utils.FileExists(config.GetConfigPath()) {
		path = config.GetConfigPath()
	}
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return err
		}
		c.config = cfg
	}
	if err := c.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level, _ := c.config.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.logger.SetLevel(level)
	return nil
}

func (c *cli) loadTemplate() (template.Template, error) {
	path := c.templatePath
	if path == "" {
		path = c.config.Export.Template
	}
	if path == "" {
		return template.Default(), nil
	}
	tmpl, err := template.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Loaded template", "name", tmpl.Name, "path", path)
	return tmpl, nil
}

func (c *cli) loadDocument(path string) (*document.Document, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	if !utils.FileExists(doc.ScannedPath()) {
		return nil, fmt.Errorf("scanned image %s not found", doc.ScannedPath())
	}
	if !utils.IsImageFile(doc.ScannedPath()) {
		return nil, fmt.Errorf("unsupported scanned image %s", doc.ScannedPath())
	}
	doc.SetLogger(c.logger)
	doc.SetCropOptions(document.CropOptions{
		Quality:  c.config.Export.Quality,
		Lossless: c.config.Export.Lossless,
	})
	return doc, nil
}

func (c *cli) newExporter() (*boxcrop.Exporter, error) {
	tmpl, err := c.loadTemplate()
	if err != nil {
		return nil, err
	}
	x, err := boxcrop.New(tmpl, export.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}
	x.SetLogger(c.logger)
	return x, nil
}

func (c *cli) progress(done, total int) {
	c.logger.Debug("Cropping", "done", done, "total", total)
}

func (c *cli) reportCrops(dir string) {
	count, size, err := utils.DirStats(dir)
	if err != nil {
		c.logger.Warn("Could not read crops directory", "dir", dir, "err", err)
		return
	}
	c.logger.Info("Crops written", "dir", dir, "files", count, "size", utils.FormatFileSize(size))
}
