package memory

import (
	"time"

	"kidnews/internal/domain"
)

// seed loads three demo articles so a fresh instance is browsable without
// any external configuration. Article ids continue above the seeded ones.
func (s *Store) seed() {
	now := time.Now()
	site := "Demo News"

	demos := []domain.Article{
		{
			ID:               1,
			OriginalURL:      "https://example.com/news/mars-rover",
			TargetAge:        8,
			OriginalTitle:    "Rover Discovers Evidence of Ancient Water Channels on Mars",
			OriginalContent:  "Scientists analyzing data from the rover have identified sediment patterns consistent with long-lived water flows on the Martian surface.",
			ConvertedTitle:   "A Robot Found Signs of Old Rivers on Mars!",
			ConvertedContent: "A robot car on Mars found marks in the dirt. The marks show that water flowed there a very, very long time ago. That means Mars once had rivers, just like Earth!",
			ConvertedSummary: "A Mars robot found proof that rivers used to flow on Mars.",
			Category:         "science",
			Status:           domain.StatusCompleted,
			SiteName:         &site,
			Reactions:        []string{},
			CreatedAt:        now.Add(-48 * time.Hour),
		},
		{
			ID:               2,
			OriginalURL:      "https://example.com/news/panda-cub",
			TargetAge:        6,
			OriginalTitle:    "Zoo Celebrates Birth of Rare Giant Panda Cub",
			OriginalContent:  "The zoo announced the birth of a giant panda cub, a significant milestone for the international breeding program.",
			ConvertedTitle:   "A Baby Panda Was Born at the Zoo!",
			ConvertedContent: "A tiny baby panda was born at the zoo. Baby pandas are very small and pink when they are born. The zookeepers are taking good care of the new cub.",
			ConvertedSummary: "A rare baby panda was born at the zoo and everyone is excited.",
			Category:         "animals",
			Status:           domain.StatusCompleted,
			SiteName:         &site,
			Reactions:        []string{},
			CreatedAt:        now.Add(-24 * time.Hour),
		},
		{
			ID:               3,
			OriginalURL:      "https://example.com/news/solar-race",
			TargetAge:        10,
			OriginalTitle:    "Student Team Wins Solar-Powered Car Race Across the Desert",
			OriginalContent:  "A university team claimed first place in the annual solar challenge, completing the 3000 km desert course on sunlight alone.",
			ConvertedTitle:   "Students Win a Race with a Sun-Powered Car",
			ConvertedContent: "A team of students built a car that runs only on sunlight. They drove it across a huge desert for 3000 kilometers and won the big race. No gasoline needed!",
			ConvertedSummary: "Students won a long desert race driving a car powered only by the sun.",
			Category:         "science",
			Status:           domain.StatusCompleted,
			SiteName:         &site,
			Reactions:        []string{},
			CreatedAt:        now.Add(-2 * time.Hour),
		},
	}

	for i := range demos {
		s.articles[demos[i].ID] = &demos[i]
	}
	s.nextArticleID = 4
}
