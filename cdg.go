/*
Package cdg is a library for decoding CD+Graphics (CDG) karaoke tracks
and maintaining a song database built from them.
*/
package cdg

import "log"

type Library struct {
	db     *SongDB
	logger *log.Logger
}

func New(file string, logger *log.Logger) (*Library, error) {
	db, err := NewSongDB(file)
	if err != nil {
		return nil, err
	}
	return &Library{
		db:     db,
		logger: logger,
	}, nil
}

func (l *Library) Close() error {
	return l.db.Close()
}

// DB exposes the underlying song database.
func (l *Library) DB() *SongDB {
	return l.db
}
