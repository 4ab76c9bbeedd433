package cdg

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bodgit/cdg/frame"
	"github.com/bodgit/cdg/player"
)

const scanWorkers = 10

func (l *Library) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end
			// up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func (l *Library) directoryWorker(ctx context.Context, in <-chan string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			d, err := os.Open(dir)
			if err != nil {
				errc <- err
				return
			}

			names, err := d.Readdirnames(0)
			d.Close()
			if err != nil {
				errc <- err
				return
			}

			for _, name := range names {
				if name[0] == '.' || filepath.Ext(name) != ".cdg" {
					continue
				}
				if err := l.indexSong(filepath.Join(dir, name)); err != nil {
					errc <- err
					return
				}
			}
		}
	}()
	return errc
}

// indexSong adds or refreshes the database entry for one .cdg file.
func (l *Library) indexSong(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	crc, err := crcFile(file)
	if err != nil {
		return err
	}

	s := Song{
		Path:     file,
		CRC:      crc,
		Duration: player.Duration(info.Size()),
	}
	s.Title, s.Artist = songMetadata(file)

	if audio, err := findAudio(file); err == nil && audio != "" {
		if s.AudioDuration, err = audioDuration(audio); err != nil {
			l.logger.Printf("Cannot determine duration of \"%s\": %v\n", audio, err)
		}
	}

	thumbnail, err := l.thumbnail(file, s)
	if err != nil {
		l.logger.Printf("Cannot render thumbnail for \"%s\": %v\n", file, err)
	}

	l.logger.Printf("Indexing \"%s\" (%s)\n", file, s.Duration)

	return l.db.AddSong(s, thumbnail)
}

// thumbnail decodes the track to its halfway point and renders a
// snapshot, which is usually mid-lyrics and recognizable.
func (l *Library) thumbnail(file string, s Song) ([]byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := player.New(f)
	if err := p.Advance(s.Duration / 2); err != nil && err != io.EOF {
		return nil, err
	}

	return frame.Thumbnail(p.Decoder())
}

// Scan walks a directory tree indexing every .cdg file found into the
// song database.
func (l *Library) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dirs, errc := l.findDirectories(ctx, dir)
	errcList := []<-chan error{errc}

	for i := 0; i < scanWorkers; i++ {
		errcList = append(errcList, l.directoryWorker(ctx, dirs))
	}

	return waitForPipeline(errcList...)
}

func waitForPipeline(errs ...<-chan error) error {
	for err := range mergeErrors(errs...) {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
