package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/dunjunz"
	"github.com/bodgit/dunjunz/render"
	"github.com/bodgit/dunjunz/sprite"
	"github.com/bodgit/dunjunz/uef"
	"github.com/urfave/cli/v2"
)

const defaultDB = "dunjunz.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func open(c *cli.Context) (*dunjunz.Dunjunz, error) {
	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	files, err := uef.Decode(f)
	if err != nil {
		return nil, err
	}

	logger := newLogger(c)
	for _, file := range files {
		logger.Printf("Found \"%s\", %d bytes\n", file.Name, len(file.Data))
	}

	return dunjunz.New(dunjunz.NewBlocks(files), logger), nil
}

func levelArg(c *cli.Context) (int, error) {
	n, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return 0, err
	}
	if n < 1 || n > dunjunz.NumLevels {
		return 0, cli.Exit("Please specify a level from 1 to 25.", 1)
	}
	return n, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "dunjunz"
	app.Usage = "Dunjunz level and sprite extraction utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DUNJUNZ_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "map",
			Usage:       "Write an HTML map of a level",
			Description: "",
			ArgsUsage:   "UEF LEVEL DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 3 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				n, err := levelArg(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				d, err := open(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				sprites, err := d.Sprites()
				if err != nil {
					return cli.Exit(err, 1)
				}

				l, err := d.Level(n)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := render.WriteMap(c.Args().Get(2), n, l, sprites); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "dump",
			Usage:       "Dump a decoded level as YAML",
			Description: "",
			ArgsUsage:   "UEF LEVEL",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				n, err := levelArg(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				d, err := open(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				l, err := d.Level(n)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := render.WriteYAML(os.Stdout, n, l); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "sprites",
			Usage:       "Write every sprite as a PNG",
			Description: "",
			ArgsUsage:   "UEF DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				d, err := open(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				sprites, err := d.Sprites()
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := render.WriteSprites(c.Args().Get(1), sprites); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "encode",
			Usage:       "Convert a PNG back into a sprite tile",
			Description: "",
			ArgsUsage:   "PNG OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				in, err := os.Open(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer in.Close()

				out, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := render.EncodeTile(out, in); err != nil {
					out.Close()
					return cli.Exit(err, 1)
				}

				if err := out.Close(); err != nil {
					return cli.Exit(err, 1)
				}

				newLogger(c).Printf("Wrote %d byte tile to %s\n", sprite.TileSize, c.Args().Get(1))

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Import sprites and levels into the database",
			Description: "",
			ArgsUsage:   "UEF",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				d, err := open(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := dunjunz.NewAssetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				sprites, err := d.Sprites()
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := db.ImportSprites(sprites); err != nil {
					return cli.Exit(err, 1)
				}

				levels, err := d.Levels(context.Background())
				if err != nil {
					return cli.Exit(err, 1)
				}

				for n := 1; n <= dunjunz.NumLevels; n++ {
					if err := db.ImportLevel(n, levels[n]); err != nil {
						return cli.Exit(err, 1)
					}
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
