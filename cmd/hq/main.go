package main

import "github.com/ja-ri/HabitQuest/cmd/hq/root"

func main() {
	root.Execute()
}
