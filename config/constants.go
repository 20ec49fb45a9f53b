package config

const (
	DefaultListenAddr     = ":9101"
	DefaultProgramAddress = "RTKProgram11111111111111111111"
	DefaultDataDir        = "./data"
)
