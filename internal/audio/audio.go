package audio

// Player is the playback collaborator the core sees. PlaySong is called
// exactly once per gameplay session, on the first simulation advance;
// no timing feedback flows back, simulation time is tracked separately.
type Player interface {
	PlaySong(songID, mode string) error
	Pause()
	Unpause()
	Stop()
	SetVolume(v float64)
	Volume() float64
}
