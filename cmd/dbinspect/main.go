// Package main provides a read-only dump of the interaction database.
//
// Usage:
//
//	DB_PATH=~/ismism/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/desperati0n/ismism/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/ismism/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Interaction Database Inspection ===")
	fmt.Println()

	err = db.View(func(txn *badger.Txn) error {
		if err := dumpCurrentUser(txn); err != nil {
			return err
		}
		if err := dumpLikes(txn); err != nil {
			return err
		}
		return dumpComments(txn)
	})
	if err != nil {
		log.Fatalf("Inspection failed: %v", err)
	}
}

func dumpCurrentUser(txn *badger.Txn) error {
	item, err := txn.Get([]byte("user:current"))
	if err == badger.ErrKeyNotFound {
		fmt.Println("Current user: <none>")
		fmt.Println()
		return nil
	}
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		var user domain.User
		if err := json.Unmarshal(val, &user); err != nil {
			return err
		}
		fmt.Printf("Current user: %s (%s)\n\n", user.Name, user.ID)
		return nil
	})
}

func dumpLikes(txn *badger.Txn) error {
	fmt.Println("--- Likes ---")

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte("likes:")
	it := txn.NewIterator(opts)
	defer it.Close()

	count := 0
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		code := strings.TrimPrefix(string(item.Key()), "likes:")

		err := item.Value(func(val []byte) error {
			var likes domain.IsmLikes
			if err := json.Unmarshal(val, &likes); err != nil {
				return err
			}
			fmt.Printf("  %s: %d likes (liked by user: %v)\n",
				code, likes.TotalLikes, likes.IsLikedByUser)
			return nil
		})
		if err != nil {
			return err
		}
		count++
	}

	fmt.Printf("Total codes with likes: %d\n\n", count)
	return nil
}

func dumpComments(txn *badger.Txn) error {
	fmt.Println("--- Comments ---")

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte("comments:")
	it := txn.NewIterator(opts)
	defer it.Close()

	totalComments := 0
	totalReplies := 0
	codeCount := 0

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		code := strings.TrimPrefix(string(item.Key()), "comments:")

		err := item.Value(func(val []byte) error {
			var comments []domain.Comment
			if err := json.Unmarshal(val, &comments); err != nil {
				return err
			}

			replies := 0
			for _, c := range comments {
				replies += len(c.Replies)
			}

			fmt.Printf("  %s: %d comments, %d replies\n", code, len(comments), replies)
			totalComments += len(comments)
			totalReplies += replies
			return nil
		})
		if err != nil {
			return err
		}
		codeCount++
	}

	fmt.Printf("Total: %d comments and %d replies across %d codes\n",
		totalComments, totalReplies, codeCount)
	return nil
}
