// Package domain defines the core business entities of the application:
// users, learner profiles, words, tags, and progress entries.
package domain
