package stats

import (
	"math"
	"sort"

	"quizitup/internal/quiz"
)

// TallyEntry is one participant inside an answer group.
type TallyEntry struct {
	Nickname       string `json:"nickname"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

type TallyGroup struct {
	Answer       string       `json:"answer"`
	Count        int          `json:"count"`
	Participants []TallyEntry `json:"participants"`
}

type Tally struct {
	QuestionID string       `json:"question_id"`
	Total      int          `json:"total"`
	Groups     []TallyGroup `json:"groups"`
}

// Empty reports the "no responses yet" case.
func (t Tally) Empty() bool {
	return t.Total == 0
}

func (t Tally) Counts() map[string]int {
	counts := make(map[string]int, len(t.Groups))
	for _, group := range t.Groups {
		counts[group.Answer] = group.Count
	}
	return counts
}

// BuildTally groups answered responses by answer. Unanswered windows are
// skipped. Groups are ordered by answer, participants by elapsed time then
// nickname.
func BuildTally(questionID string, responses []quiz.Response) Tally {
	byAnswer := map[string]*TallyGroup{}
	total := 0
	for _, resp := range responses {
		if resp.Answer == nil {
			continue
		}
		group, ok := byAnswer[*resp.Answer]
		if !ok {
			group = &TallyGroup{Answer: *resp.Answer}
			byAnswer[*resp.Answer] = group
		}
		group.Count++
		group.Participants = append(group.Participants, TallyEntry{
			Nickname:       resp.Nickname,
			ElapsedSeconds: elapsedSeconds(resp),
		})
		total++
	}

	groups := make([]TallyGroup, 0, len(byAnswer))
	for _, group := range byAnswer {
		sort.Slice(group.Participants, func(i, j int) bool {
			a, b := group.Participants[i], group.Participants[j]
			if a.ElapsedSeconds != b.ElapsedSeconds {
				return a.ElapsedSeconds < b.ElapsedSeconds
			}
			return a.Nickname < b.Nickname
		})
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Answer < groups[j].Answer
	})
	return Tally{QuestionID: questionID, Total: total, Groups: groups}
}

func elapsedSeconds(resp quiz.Response) int {
	if resp.SubmittedTime == nil {
		return 0
	}
	elapsed := resp.SubmittedTime.Sub(resp.StartTime).Seconds()
	if elapsed < 0 {
		return 0
	}
	return int(math.Round(elapsed))
}
