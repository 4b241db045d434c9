// Package main provides a tool to seed the interaction database with
// demo data.
//
// It reads the catalog dataset, picks a handful of entries and creates
// likes, comments and replies to exercise the interaction endpoints.
//
// Usage:
//
//	DB_PATH=~/ismism/data/db go run ./cmd/seed --catalog ./isms.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/desperati0n/ismism/internal/catalog"
	"github.com/desperati0n/ismism/internal/domain"
	"github.com/desperati0n/ismism/internal/store"
)

var (
	catalogPath = flag.String("catalog", "", "Path to the catalog JSON dataset")
	maxEntries  = flag.Int("entries", 10, "Number of entries to seed interactions for")
)

var sampleComments = []string{
	"这个分类很有启发",
	"四格的第三格存疑",
	"和隔壁条目的边界在哪里?",
	"例子举得不错",
	"建议补充一下历史脉络",
}

var sampleReplies = []string{
	"同意",
	"不完全是这样",
	"有文献支持吗?",
	"楼上说得对",
}

func main() {
	flag.Parse()

	if *catalogPath == "" {
		log.Fatal("--catalog is required")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/ismism/data/db")
	}

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if cat.Len() == 0 {
		log.Fatal("Catalog is empty, nothing to seed")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	entries := cat.Entries()
	n := min(*maxEntries, len(entries))

	seededLikes := 0
	seededComments := 0
	seededReplies := 0

	for _, ism := range entries[:n] {
		// Roughly half the entries get a like
		if rand.IntN(2) == 0 {
			if _, err := s.ToggleIsmLike(ctx, ism.Code); err != nil {
				log.Fatalf("Failed to seed like for %s: %v", ism.Code, err)
			}
			seededLikes++
		}

		for range 1 + rand.IntN(3) {
			content := sampleComments[rand.IntN(len(sampleComments))]
			comment, err := s.AddComment(ctx, ism.Code, content)
			if err != nil {
				log.Fatalf("Failed to seed comment for %s: %v", ism.Code, err)
			}
			seededComments++

			for range rand.IntN(3) {
				reply := sampleReplies[rand.IntN(len(sampleReplies))]
				var replyTo *domain.User
				if rand.IntN(2) == 0 {
					replyTo = &comment.Author
				}
				if _, err := s.AddReply(ctx, ism.Code, comment.ID, reply, replyTo); err != nil {
					log.Fatalf("Failed to seed reply for %s: %v", ism.Code, err)
				}
				seededReplies++
			}
		}
	}

	fmt.Printf("Seeded %d likes, %d comments and %d replies across %d entries\n",
		seededLikes, seededComments, seededReplies, n)
}
