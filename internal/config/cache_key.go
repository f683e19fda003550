package config

import "fmt"

// CacheKeyStruct centralizes every Redis key and channel name so no two
// components disagree on the layout.
type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the key holding a student's active session JTI.
func (r *CacheKeyStruct) StudentSessionKey(studentID string) string {
	return fmt.Sprintf("login:%s", studentID)
}

// ExamEventsChannel returns the PubSub channel carrying exam lifecycle events.
func (r *CacheKeyStruct) ExamEventsChannel() string {
	return "exam:events"
}

var CacheKey = NewCacheKeyStruct()
