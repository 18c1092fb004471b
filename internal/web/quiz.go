package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"quizitup/internal/quiz"
)

type HostData struct {
	QuestionID     string
	Question       *quiz.Question
	JoinURL        string
	DefaultSeconds int
	MaxSeconds     int
}

type AudienceData struct {
	QuestionID string
	Question   *quiz.Question
}

func HostView(data HostData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(ctx, w, "QuizItUp - Host", "host", hostBody(data))
	})
}

func hostBody(data HostData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		text := ""
		seconds := data.DefaultSeconds
		if data.Question != nil {
			text = data.Question.Text
			seconds = data.Question.DurationSeconds
		}
		_, err := io.WriteString(w, `      <header class="hero">
        <h1>Host Dashboard</h1>
        <p>Manage your questions and see live audience responses</p>
      </header>

      <section class="panel">
        <h2>Create Question</h2>
        <form id="questionForm">
          <label>Question <input name="text" value="`+attr(text)+`" required/></label>
          <label>Question ID <input name="question_id" value="`+attr(data.QuestionID)+`" required/></label>
          <label>Seconds to answer <input name="duration_seconds" type="number" min="1" max="`+strconv.Itoa(data.MaxSeconds)+`" value="`+strconv.Itoa(seconds)+`" required/></label>
          <button type="submit" class="primary">Save Question</button>
        </form>
        <div id="questionResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Share with Audience</h2>
        <p>Audience link: <a id="joinLink" href="`+attr(data.JoinURL)+`">`+templ.EscapeString(data.JoinURL)+`</a></p>
      </section>

      <section class="panel">
        <h2>Live Results</h2>
        <button id="showResults" class="primary">Show Results</button>
        <div id="results" class="result"></div>
        <img id="resultsChart" class="chart" alt="Live audience responses" hidden/>
      </section>

    <script>
      const form = document.getElementById("questionForm");
      const questionResult = document.getElementById("questionResult");
      const joinLink = document.getElementById("joinLink");
      const results = document.getElementById("results");
      const chart = document.getElementById("resultsChart");

      function currentID() {
        return form.elements.question_id.value.trim();
      }

      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const res = await fetch("/api/questions", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            question_id: currentID(),
            text: form.elements.text.value,
            duration_seconds: Number(form.elements.duration_seconds.value)
          })
        });
        const data = await res.json();
        if (!res.ok) {
          questionResult.className = "result error";
          questionResult.textContent = data.error || "Failed to save question.";
          return;
        }
        questionResult.className = "result";
        questionResult.textContent = "Question '" + data.question.text + "' saved with ID " + data.question.question_id;
        joinLink.href = data.join_url;
        joinLink.textContent = data.join_url;
      });

      document.getElementById("showResults").addEventListener("click", async () => {
        const id = encodeURIComponent(currentID());
        const res = await fetch("/api/questions/" + id + "/results");
        const data = await res.json();
        if (!res.ok) {
          results.className = "result error";
          results.textContent = data.error || "Failed to load results.";
          chart.hidden = true;
          return;
        }
        results.className = "result";
        if (data.empty) {
          results.textContent = "Waiting for audience responses...";
          chart.hidden = true;
          return;
        }
        results.replaceChildren();
        const table = document.createElement("table");
        for (const group of data.tally.groups) {
          const row = table.insertRow();
          row.insertCell().textContent = group.answer;
          row.insertCell().textContent = group.count;
          row.insertCell().textContent = group.participants
            .map((p) => p.nickname + " (" + p.elapsed_seconds + "s)")
            .join(", ");
        }
        results.appendChild(table);
        chart.src = "/api/questions/" + id + "/results.png?t=" + Date.now();
        chart.hidden = false;
      });
    </script>`)
		return err
	})
}

func AudienceView(data AudienceData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(ctx, w, "QuizItUp - Join", "audience", audienceBody(data))
	})
}

func audienceBody(data AudienceData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Question == nil {
			_, err := io.WriteString(w, `      <header class="hero">
        <h1>Join the Game!</h1>
      </header>
      <section class="panel">
        <p class="error">Question not found. Please wait for the host to start.</p>
      </section>`)
			return err
		}
		_, err := io.WriteString(w, `      <header class="hero">
        <h1>Join the Game!</h1>
        <h2>`+templ.EscapeString(data.Question.Text)+`</h2>
      </header>

      <section class="panel" data-question-id="`+attr(data.Question.ID)+`" id="session">
        <form id="joinForm">
          <label>Enter your unique nickname <input name="nickname" autocomplete="nickname" required/></label>
          <button type="submit" class="secondary">Start</button>
        </form>
        <div id="timer" class="timer" hidden></div>
        <form id="answerForm" hidden>
          <label>Your answer <input name="answer" autocomplete="off" required/></label>
          <button type="submit" class="secondary">Submit Answer</button>
        </form>
        <div id="status" class="result"></div>
      </section>

    <script>
      const questionID = document.getElementById("session").dataset.questionId;
      const joinForm = document.getElementById("joinForm");
      const answerForm = document.getElementById("answerForm");
      const timer = document.getElementById("timer");
      const status = document.getElementById("status");
      let nickname = "";
      let ticker = null;

      function show(state) {
        clearInterval(ticker);
        status.className = "result";
        if (state.state === "answered") {
          answerForm.hidden = true;
          timer.hidden = true;
          status.className = "result warning";
          status.textContent = "You have already answered this question. Wait for the next one!";
          return;
        }
        if (state.state === "expired") {
          answerForm.hidden = true;
          timer.hidden = false;
          timer.textContent = "0s";
          status.className = "result error";
          status.textContent = "Time's up! You can no longer answer.";
          return;
        }
        const expiry = Date.now() + state.remaining_seconds * 1000;
        answerForm.hidden = false;
        timer.hidden = false;
        const tick = () => {
          const left = Math.max(0, Math.floor((expiry - Date.now()) / 1000));
          timer.textContent = left + "s";
          if (left === 0) {
            refresh();
          }
        };
        tick();
        ticker = setInterval(tick, 1000);
      }

      async function refresh() {
        const res = await fetch("/api/questions/" + encodeURIComponent(questionID) + "/sessions/" + encodeURIComponent(nickname));
        const data = await res.json();
        if (res.ok) {
          show(data);
        }
      }

      joinForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        nickname = joinForm.elements.nickname.value.trim();
        const res = await fetch("/api/questions/" + encodeURIComponent(questionID) + "/join", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ nickname })
        });
        const data = await res.json();
        if (!res.ok) {
          status.className = "result error";
          status.textContent = data.error || "Failed to join.";
          return;
        }
        nickname = data.nickname;
        joinForm.hidden = true;
        show(data);
      });

      answerForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        const res = await fetch("/api/questions/" + encodeURIComponent(questionID) + "/answers", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ nickname, answer: answerForm.elements.answer.value })
        });
        const data = await res.json();
        if (!res.ok) {
          status.className = "result error";
          status.textContent = data.error || "Failed to submit answer.";
          if (data.kind === "expired" || data.kind === "already_answered") {
            answerForm.hidden = true;
            clearInterval(ticker);
          }
          return;
        }
        clearInterval(ticker);
        answerForm.hidden = true;
        timer.hidden = true;
        status.textContent = "Response submitted! Waiting for the next question...";
      });
    </script>`)
		return err
	})
}
