package model

// Task is one entry of the task list.
type Task struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}
