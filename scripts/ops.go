// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

// go run scripts/ops.go [task] [args...]
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/ops.go [test|test-detail|svr|batch] [args...]")
		os.Exit(1)
	}
	task, args := os.Args[1], os.Args[2:]
	switch task {
	case "test":
		runTest()
	case "test-detail":
		run("go", "test", "./...", "-v", "-count=1")
	case "svr":
		run("go", append([]string{"run", "./cmd/svr"}, args...)...)
	case "batch":
		run("go", append([]string{"run", "./cmd/run"}, args...)...)
	default:
		yellow.Printf("Unknown task: %s\n", task)
		os.Exit(1)
	}
}

// runTest 只印出 ok / FAIL 以及建置錯誤
func runTest() {
	green.Println("running tests")
	_ = exec.Command("go", "clean", "-testcache").Run()

	cmd := exec.Command("go", "test", "./...", "-cover", "-count=1")
	out, err := cmd.StdoutPipe()
	if err != nil {
		red.Println(err.Error())
		os.Exit(1)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		red.Printf("Error starting go test: %v\n", err)
		os.Exit(1)
	}
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "ok"):
			green.Println(line)
		case strings.HasPrefix(line, "FAIL"),
			strings.Contains(line, "build failed"),
			strings.Contains(line, "setup failed"):
			red.Println(line)
		}
	}
	if err := cmd.Wait(); err != nil {
		red.Println("\nTests Finished with Errors")
		os.Exit(1)
	}
}

func run(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	if err := cmd.Run(); err != nil {
		red.Println(err.Error())
		os.Exit(1)
	}
}
