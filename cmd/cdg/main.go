package main

import (
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/bodgit/cdg"
	"github.com/bodgit/cdg/frame"
	"github.com/bodgit/cdg/player"
)

const defaultDB = "cdg.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openLibrary(c *cli.Context) (*cdg.Library, error) {
	return cdg.New(c.String("db"), newLogger(c))
}

// advance drives the player to the given position, treating stream
// exhaustion as a normal stop.
func advance(p *player.Player, pos time.Duration) error {
	if err := p.Advance(pos); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func writeImage(out string, p *player.Player, c *cli.Context) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	if c.Int("width") > 0 && c.Int("height") > 0 {
		zoom, err := frame.ParseZoom(c.String("zoom"))
		if err != nil {
			return err
		}
		m := frame.Render(p.Decoder(), c.Int("width"), c.Int("height"), zoom)
		if strings.ToLower(filepath.Ext(out)) == ".png" {
			return png.Encode(f, m)
		}
		return frame.EncodeGIF(f, m)
	}

	m := frame.Image(p.Decoder())
	if strings.ToLower(filepath.Ext(out)) == ".png" {
		return png.Encode(f, m)
	}
	return frame.EncodeGIF(f, m)
}

func main() {
	app := cli.NewApp()

	app.Name = "cdg"
	app.Usage = "CD+Graphics (CDG) karaoke track utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CDG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to song database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Show details of a CDG file",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				info, err := cdg.Probe(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Printf("Title:    %s\n", info.Title)
				if info.Artist != "" {
					fmt.Printf("Artist:   %s\n", info.Artist)
				}
				fmt.Printf("Packets:  %d\n", info.Packets)
				fmt.Printf("Duration: %s\n", info.Duration)
				fmt.Printf("CRC:      %s\n", info.CRC)
				if info.Audio != "" {
					fmt.Printf("Audio:    %s (%s)\n", info.Audio, info.AudioDuration)
				}

				return nil
			},
		},
		{
			Name:      "snapshot",
			Usage:     "Render a single frame of a CDG file to an image",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:  "at",
					Usage: "playback position to render; defaults to the end",
				},
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "output file; format follows the extension (.gif or .png)",
				},
				&cli.IntFlag{
					Name:  "width",
					Usage: "output width; unscaled if zero",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "output height; unscaled if zero",
				},
				&cli.StringFlag{
					Name:  "zoom",
					Value: "int",
					Usage: "scaling mode: none, quick, int or soft",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()

				f, err := os.Open(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				info, err := f.Stat()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				at := c.Duration("at")
				if at == 0 {
					at = player.Duration(info.Size())
				}

				p := player.New(f)
				if err := advance(p, at); err != nil {
					return cli.NewExitError(err, 1)
				}

				out := c.String("out")
				if out == "" {
					out = strings.TrimSuffix(file, filepath.Ext(file)) + ".gif"
				}

				if err := writeImage(out, p, c); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Export a CDG file as an animated GIF",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "output file",
				},
				&cli.IntFlag{
					Name:  "fps",
					Value: 10,
					Usage: "frames captured per second",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()

				f, err := os.Open(file)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				info, err := f.Stat()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				total := player.Duration(info.Size())
				interval := time.Second / time.Duration(c.Int("fps"))

				p := player.New(f)
				a := frame.NewAnimator(interval)

				for pos := time.Duration(0); pos <= total; pos += interval {
					if err := p.Advance(pos); err != nil && err != io.EOF {
						return cli.NewExitError(err, 1)
					}
					a.Capture(p.Decoder())
				}

				out := c.String("out")
				if out == "" {
					out = strings.TrimSuffix(file, filepath.Ext(file)) + ".gif"
				}

				g, err := os.Create(out)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer g.Close()

				if err := a.Encode(g); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan a directory tree and index every CDG file",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				l, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer l.Close()

				if err := l.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List the indexed songs",
			Action: func(c *cli.Context) error {
				l, err := openLibrary(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer l.Close()

				songs, err := l.DB().Songs()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, s := range songs {
					if s.Artist != "" {
						fmt.Printf("%s - %s (%s) %s\n", s.Artist, s.Title, s.Duration, s.Path)
					} else {
						fmt.Printf("%s (%s) %s\n", s.Title, s.Duration, s.Path)
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
