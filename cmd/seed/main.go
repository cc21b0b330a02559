package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"boardquest/config"
	"boardquest/internal/model"
	"boardquest/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	repo := repository.NewQuestionRepo(client.Database(cfg.MongoDB))

	count, err := repo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count questions")
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("question pool already seeded, skipping")
		return
	}

	questions := defaultQuestions()
	if err := repo.Insert(ctx, questions); err != nil {
		log.Fatal().Err(err).Msg("failed to insert questions")
	}

	log.Info().Int("count", len(questions)).Msg("seeded question pool")
}

type seedQuestion struct {
	prompt   string
	options  []string
	answer   int
	category string
}

func defaultQuestions() []*model.QuizQuestion {
	seeds := []seedQuestion{
		{"Which planet is known as the Red Planet?", []string{"Venus", "Mars", "Jupiter", "Mercury"}, 1, "science"},
		{"What is the chemical symbol for gold?", []string{"Go", "Gd", "Au", "Ag"}, 2, "science"},
		{"How many bones are in the adult human body?", []string{"186", "206", "226", "246"}, 1, "science"},
		{"What gas do plants absorb from the atmosphere?", []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"}, 2, "science"},
		{"Which ocean is the largest?", []string{"Atlantic", "Indian", "Arctic", "Pacific"}, 3, "geography"},
		{"What is the capital of Australia?", []string{"Sydney", "Melbourne", "Canberra", "Perth"}, 2, "geography"},
		{"Which river is the longest in the world?", []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, 1, "geography"},
		{"Mount Everest sits on the border of Nepal and which country?", []string{"India", "Bhutan", "China", "Pakistan"}, 2, "geography"},
		{"In which year did the Berlin Wall fall?", []string{"1987", "1989", "1991", "1993"}, 1, "history"},
		{"Who was the first president of the United States?", []string{"Thomas Jefferson", "John Adams", "George Washington", "Benjamin Franklin"}, 2, "history"},
		{"Which ancient civilization built Machu Picchu?", []string{"Aztec", "Maya", "Inca", "Olmec"}, 2, "history"},
		{"The Hundred Years' War was fought between England and which country?", []string{"Spain", "France", "Portugal", "Germany"}, 1, "history"},
		{"Which composer wrote the Ninth Symphony while deaf?", []string{"Mozart", "Bach", "Beethoven", "Brahms"}, 2, "arts"},
		{"Who painted the Mona Lisa?", []string{"Michelangelo", "Leonardo da Vinci", "Raphael", "Donatello"}, 1, "arts"},
		{"How many strings does a standard violin have?", []string{"4", "5", "6", "7"}, 0, "arts"},
		{"Which author wrote '1984'?", []string{"Aldous Huxley", "George Orwell", "Ray Bradbury", "H.G. Wells"}, 1, "arts"},
		{"How many players are on a soccer team on the field?", []string{"9", "10", "11", "12"}, 2, "sports"},
		{"In which sport is the term 'love' used for a score of zero?", []string{"Golf", "Tennis", "Cricket", "Badminton"}, 1, "sports"},
		{"How often are the Summer Olympic Games held?", []string{"Every 2 years", "Every 3 years", "Every 4 years", "Every 5 years"}, 2, "sports"},
		{"Which country has won the most FIFA World Cups?", []string{"Germany", "Italy", "Argentina", "Brazil"}, 3, "sports"},
		{"What does CPU stand for?", []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Core Processing Unit"}, 0, "technology"},
		{"Which company created the Android operating system?", []string{"Apple", "Microsoft", "Android Inc.", "Samsung"}, 2, "technology"},
		{"What year was the World Wide Web invented?", []string{"1985", "1989", "1993", "1997"}, 1, "technology"},
		{"How many bits are in a byte?", []string{"4", "8", "16", "32"}, 1, "technology"},
		{"What is the largest mammal on Earth?", []string{"African elephant", "Blue whale", "Giraffe", "Polar bear"}, 1, "nature"},
		{"How many legs does a spider have?", []string{"6", "8", "10", "12"}, 1, "nature"},
		{"Which bird is known for its ability to mimic human speech?", []string{"Eagle", "Penguin", "Parrot", "Owl"}, 2, "nature"},
		{"What is a group of lions called?", []string{"A pack", "A herd", "A pride", "A flock"}, 2, "nature"},
		{"What is the square root of 144?", []string{"10", "11", "12", "14"}, 2, "math"},
		{"How many degrees are in a right angle?", []string{"45", "60", "90", "180"}, 2, "math"},
	}

	questions := make([]*model.QuizQuestion, len(seeds))
	for i, s := range seeds {
		questions[i] = &model.QuizQuestion{
			ID:       "q_" + uuid.New().String()[:8],
			Prompt:   s.prompt,
			Options:  s.options,
			Answer:   s.answer,
			Category: s.category,
		}
	}
	return questions
}
