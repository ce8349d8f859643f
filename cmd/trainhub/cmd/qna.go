package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trainhub/trainhub/internal/adapter/outbound/portal"
)

var (
	qnaTitle        string
	qnaContent      string
	qnaNCSType      string
	qnaQuestionType string
	qnaAnswerBody   string
)

var qnaCmd = &cobra.Command{
	Use:   "qna",
	Short: "Browse and answer Q&A questions",
}

var qnaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	RunE:  runQNAList,
}

var qnaShowCmd = &cobra.Command{
	Use:   "show <question-id>",
	Short: "Show a question with its answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runQNAShow,
}

var qnaAskCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a question",
	RunE:  runQNAAsk,
}

var qnaAnswerCmd = &cobra.Command{
	Use:   "answer <question-id>",
	Short: "Answer a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runQNAAnswer,
}

func init() {
	qnaAskCmd.Flags().StringVar(&qnaTitle, "title", "", "question title")
	qnaAskCmd.Flags().StringVar(&qnaContent, "content", "", "question body")
	qnaAskCmd.Flags().StringVar(&qnaNCSType, "ncs", "", "NCS category")
	qnaAskCmd.Flags().StringVar(&qnaQuestionType, "type", "", "question type")
	qnaAnswerCmd.Flags().StringVar(&qnaAnswerBody, "content", "", "answer body")

	qnaCmd.AddCommand(qnaListCmd, qnaShowCmd, qnaAskCmd, qnaAnswerCmd)
	rootCmd.AddCommand(qnaCmd)
}

func runQNAList(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	questions, err := app.client.Questions(cmd.Context())
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Println("No questions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tANSWERS\tVIEWS")
	for _, q := range questions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n",
			q.ID, q.Title, q.AuthorNickname, q.AnswerCount, q.ViewCount)
	}
	return w.Flush()
}

func runQNAShow(cmd *cobra.Command, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	q, err := app.client.Question(cmd.Context(), questionID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", q.Title)
	fmt.Printf("by %s on %s [%s]\n\n", q.AuthorNickname, q.CreatedAt, q.NCSType)
	fmt.Println(q.Content)

	answers, err := app.client.Answers(cmd.Context(), questionID)
	if err != nil {
		return err
	}
	if len(answers) > 0 {
		fmt.Printf("\nAnswers (%d):\n", len(answers))
		for _, a := range answers {
			fmt.Printf("  %s: %s\n", a.AuthorNickname, a.Content)
		}
	}
	return nil
}

func runQNAAsk(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}
	if qnaTitle == "" || qnaContent == "" {
		return fmt.Errorf("--title and --content are required")
	}

	err = app.client.CreateQuestion(cmd.Context(), portal.NewQuestion{
		Title:        qnaTitle,
		Content:      qnaContent,
		NCSType:      qnaNCSType,
		QuestionType: qnaQuestionType,
	})
	if err != nil {
		return err
	}
	fmt.Println("Question posted.")
	return nil
}

func runQNAAnswer(cmd *cobra.Command, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}

	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	if err := app.requireAuth(); err != nil {
		return err
	}
	if qnaAnswerBody == "" {
		return fmt.Errorf("--content is required")
	}

	if err := app.client.CreateAnswer(cmd.Context(), questionID, qnaAnswerBody); err != nil {
		return err
	}
	fmt.Println("Answer posted.")
	return nil
}
