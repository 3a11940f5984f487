package main

// makefile runner
func main() {
	bindVar()
	runProfiled(executeBatch, cfg.pprofmode)
}
