package score

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"git.lost.host/meutraa/eotf/internal/logger"
)

type DefaultScorer struct {
	Path string // defaults to ./scores.db
	db   *sql.DB
}

func (s *DefaultScorer) Init() error {
	if s.Path == "" {
		s.Path = "./scores.db"
	}
	db, err := sql.Open("sqlite3", s.Path)
	if nil != err {
		return err
	}

	initStatement := `
	create table if not exists results
	  (
		  id integer not null primary key,
		  song text,
		  difficulty text,
		  hits integer,
		  misses integer,
		  max_combo integer,
		  played_at integer
	  );
	`
	if _, err := db.Exec(initStatement); nil != err {
		return err
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(r Result) {
	if nil == s.db {
		return
	}
	_, err := s.db.Exec(
		"insert into results(song, difficulty, hits, misses, max_combo, played_at) values(?, ?, ?, ?, ?, ?)",
		r.SongID, r.Difficulty, r.Hits, r.Misses, r.MaxCombo, r.PlayedAt.Unix(),
	)
	if nil != err {
		logger.Warn("unable to save result", zap.Error(err))
	}
}

func (s *DefaultScorer) Best(songID string) (Result, bool) {
	if nil == s.db {
		return Result{}, false
	}
	rows, err := s.db.Query(
		"select song, difficulty, hits, misses, max_combo, played_at from results where song = ?",
		songID,
	)
	if nil != err {
		if err != sql.ErrNoRows {
			logger.Warn("unable to load results", zap.Error(err))
		}
		return Result{}, false
	}
	defer rows.Close()

	var best Result
	found := false
	for rows.Next() {
		var r Result
		var playedAt int64
		if err := rows.Scan(&r.SongID, &r.Difficulty, &r.Hits, &r.Misses, &r.MaxCombo, &playedAt); nil != err {
			continue
		}
		r.PlayedAt = time.Unix(playedAt, 0)
		if !found || r.Accuracy() > best.Accuracy() {
			best = r
			found = true
		}
	}
	return best, found
}
