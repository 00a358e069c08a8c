package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quiz-result-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// LoadQuizFile reads one quiz definition. YAML and JSON files are both accepted.
func LoadQuizFile(path string) (domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Quiz{}, err
	}
	var quiz domain.Quiz
	if err := yaml.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("parse %s: %w", path, err)
	}
	fillParentIDs(&quiz)
	return quiz, nil
}

// LoadQuizzesDir reads every *.yaml, *.yml and *.json file in dir, keyed by quiz ID.
func LoadQuizzesDir(dir string) (map[int64]domain.Quiz, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	quizzes := make(map[int64]domain.Quiz, len(names))
	for _, name := range names {
		quiz, err := LoadQuizFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if _, dup := quizzes[quiz.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz id %d in %s", quiz.ID, name)
		}
		quizzes[quiz.ID] = quiz
	}
	return quizzes, nil
}

// fillParentIDs sets owner IDs that fixture files usually leave out.
func fillParentIDs(quiz *domain.Quiz) {
	for qi := range quiz.Questions {
		question := &quiz.Questions[qi]
		if question.QuizID == 0 {
			question.QuizID = quiz.ID
		}
		for ai := range question.Answers {
			answer := &question.Answers[ai]
			if answer.QuestionID == 0 {
				answer.QuestionID = question.ID
			}
			for si := range answer.Scores {
				if answer.Scores[si].AnswerID == 0 {
					answer.Scores[si].AnswerID = answer.ID
				}
			}
		}
	}
	for ri := range quiz.Results {
		if quiz.Results[ri].QuizID == 0 {
			quiz.Results[ri].QuizID = quiz.ID
		}
	}
}
