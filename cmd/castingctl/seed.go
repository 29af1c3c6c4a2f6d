package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
	mongodoc "github.com/alcymedia/casting-caly/api/internal/infrastructure/mongo"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

var (
	seedFirstNames = []string{"Ana", "Beto", "Carla", "Dércio", "Elsa", "Fátima", "Gervásio", "Helena", "Ivan", "Joana"}
	seedLastNames  = []string{"Silva", "Macuácua", "Mondlane", "Chissano", "Tembe", "Cossa", "Nhantumbo", "Sitoe"}
)

func newSeedCommand(opts *globalOptions) *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo submissions for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return errors.New("--count must be at least 1")
			}
			return withSession(cmd, opts, func(ctx context.Context, s *session) error {
				if err := mongodoc.EnsureIndexes(ctx, s.db, s.collections); err != nil {
					return err
				}
				repo := mongodoc.NewSubmissionRepository(s.db, s.collections.Submissions)
				rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

				inserted, skipped := 0, 0
				for _, sub := range demoSubmissions(rng, count) {
					err := repo.Insert(ctx, sub)
					if errors.Is(err, apperr.ErrDuplicatePhone) {
						skipped++
						continue
					}
					if err != nil {
						return err
					}
					inserted++
				}
				opts.logger.Info("seed finished", "inserted", inserted, "skipped_duplicates", skipped, "seed", seed)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 20, "number of submissions to generate")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed, for reproducible data")
	return cmd
}

// demoSubmissions builds submissions that satisfy every intake constraint.
// Photo paths point to objects that do not exist, so the dashboard shows the placeholder.
func demoSubmissions(rng *rand.Rand, n int) []*domain.Submission {
	subs := make([]*domain.Submission, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s", pick(rng, seedFirstNames), pick(rng, seedLastNames))
		photoCount := domain.MinPhotos + rng.IntN(domain.MaxPhotos-domain.MinPhotos+1)
		photos := make([]string, photoCount)
		for p := range photos {
			photos[p] = fmt.Sprintf("%s/seed-%d-%d.jpg", domain.PhotoFolder, i, p)
		}
		var cv *string
		if rng.IntN(3) == 0 {
			path := fmt.Sprintf("%s/seed-%d.pdf", domain.CVFolder, i)
			cv = &path
		}
		subs = append(subs, &domain.Submission{
			FullName:    name,
			Age:         18 + rng.IntN(40),
			Gender:      domain.Gender(pick(rng, domain.Genders)),
			Phone:       fmt.Sprintf("+25884%07d", rng.IntN(10_000_000)),
			Province:    domain.Province(pick(rng, domain.Provinces)),
			ProfileType: domain.ProfileType(pick(rng, domain.ProfileTypes)),
			Motivation:  demoMotivation(name),
			Photos:      photos,
			CVPortfolio: cv,
		})
	}
	return subs
}

func demoMotivation(name string) string {
	base := fmt.Sprintf("Eu sou %s e quero fazer parte do Casting Caly II porque acredito no cinema moçambicano. ", name)
	return strings.Repeat(base, domain.MinMotivationRunes/len([]rune(base))+1)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
