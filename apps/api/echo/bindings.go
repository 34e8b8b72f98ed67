package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/classquest/classquest/core/assessment"
	"github.com/classquest/classquest/core/leaderboard"
	"github.com/classquest/classquest/core/question"
)

// scopeOf reads the material scope from the path params.
func scopeOf(ctx echo.Context) question.Scope {
	return question.Scope{
		ClassroomID: ctx.Param("classroom"),
		SectionID:   ctx.Param("section"),
		MaterialID:  ctx.Param("material"),
	}
}

type (
	AnswerRequest struct {
		QuestionID     string `json:"question_id" validate:"required"`
		SelectedOption *int   `json:"selected_option" validate:"required,gte=0"`
	}

	SubmitRequest struct {
		Answers []AnswerRequest `json:"answers" validate:"required,min=1,dive"`
	}
)

func (data *SubmitRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(data)
}

func (data SubmitRequest) answers() []assessment.Answer {
	answers := make([]assessment.Answer, len(data.Answers))
	for i, a := range data.Answers {
		answers[i] = assessment.Answer{QuestionID: a.QuestionID, SelectedOption: *a.SelectedOption}
	}
	return answers
}

type (
	PresentationResponse struct {
		Questions []assessment.PresentedQuestion `json:"questions"`
	}

	LeaderboardResponse struct {
		Leaderboard []leaderboard.Entry `json:"leaderboard"`
	}
)
