package cdg

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Song is one indexed karaoke track.
type Song struct {
	Path          string
	Title         string
	Artist        string
	CRC           string
	Duration      time.Duration
	AudioDuration time.Duration
}

type SongDB struct {
	db *sql.DB
}

func NewSongDB(file string) (*SongDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS thumbnail (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, gif BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS song (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, title TEXT NOT NULL, artist TEXT NOT NULL, crc TEXT NOT NULL, duration INTEGER NOT NULL, audio_duration INTEGER, thumbnail_id INTEGER, FOREIGN KEY(thumbnail_id) REFERENCES thumbnail(id))"); err != nil {
		return nil, err
	}

	return &SongDB{
		db: db,
	}, nil
}

func (db *SongDB) Close() error {
	return db.db.Close()
}

func (db *SongDB) addThumbnail(gif []byte) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(gif))

	var id int64
	switch err := db.db.QueryRow("SELECT id FROM thumbnail WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO thumbnail (sha1, gif) VALUES (?, ?)", sha, gif)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// AddSong inserts or replaces the entry for s.Path, storing the
// thumbnail alongside it when one is provided.
func (db *SongDB) AddSong(s Song, thumbnail []byte) error {
	var tid sql.NullInt64
	if thumbnail != nil {
		id, err := db.addThumbnail(thumbnail)
		if err != nil {
			return err
		}
		tid.Int64, tid.Valid = id, true
	}

	var audio sql.NullInt64
	if s.AudioDuration != 0 {
		audio.Int64, audio.Valid = s.AudioDuration.Milliseconds(), true
	}

	if _, err := db.db.Exec("INSERT OR REPLACE INTO song (path, title, artist, crc, duration, audio_duration, thumbnail_id) VALUES (?, ?, ?, ?, ?, ?, ?)", s.Path, s.Title, s.Artist, s.CRC, s.Duration.Milliseconds(), audio, tid); err != nil {
		return err
	}

	return nil
}

// FindSongByCRC returns the song matching the CRC, or nil if there is
// no match.
func (db *SongDB) FindSongByCRC(crc string) (*Song, error) {
	s := Song{CRC: crc}
	var duration int64
	var audio sql.NullInt64
	switch err := db.db.QueryRow("SELECT path, title, artist, duration, audio_duration FROM song WHERE crc = ?", crc).Scan(&s.Path, &s.Title, &s.Artist, &duration, &audio); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		s.Duration = time.Duration(duration) * time.Millisecond
		if audio.Valid {
			s.AudioDuration = time.Duration(audio.Int64) * time.Millisecond
		}
		return &s, nil
	default:
		return nil, err
	}
}

// Songs returns every indexed song ordered by artist then title.
func (db *SongDB) Songs() ([]Song, error) {
	rows, err := db.db.Query("SELECT path, title, artist, crc, duration, audio_duration FROM song ORDER BY artist, title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		var s Song
		var duration int64
		var audio sql.NullInt64
		if err := rows.Scan(&s.Path, &s.Title, &s.Artist, &s.CRC, &duration, &audio); err != nil {
			return nil, err
		}
		s.Duration = time.Duration(duration) * time.Millisecond
		if audio.Valid {
			s.AudioDuration = time.Duration(audio.Int64) * time.Millisecond
		}
		songs = append(songs, s)
	}

	return songs, rows.Err()
}

// Thumbnail returns the stored thumbnail GIF for the song at path, or
// nil if the song has none.
func (db *SongDB) Thumbnail(path string) ([]byte, error) {
	var gif []byte
	switch err := db.db.QueryRow("SELECT t.gif FROM song AS s JOIN thumbnail AS t ON s.thumbnail_id = t.id WHERE s.path = ?", path).Scan(&gif); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return gif, nil
	default:
		return nil, err
	}
}
