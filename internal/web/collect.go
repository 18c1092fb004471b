package web

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quizitup/internal/config"
)

type CollectData struct {
	XAxis config.Axis
	YAxis config.Axis
}

func CollectHostView(data CollectData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(ctx, w, "QuizItUp - Data Collection", "host", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `      <header class="hero">
        <h1>Data Collection</h1>
        <p>`+templ.EscapeString(data.XAxis.Label)+` vs `+templ.EscapeString(data.YAxis.Label)+`</p>
      </header>

      <section class="panel">
        <h2>Regression</h2>
        <button id="refresh" class="primary">Refresh</button>
        <div id="fit" class="result"></div>
        <img id="scatter" class="chart" alt="Scatter plot with fitted line" hidden/>
      </section>

      <section class="panel">
        <h2>Responses</h2>
        <table id="points"><thead><tr><th>Nickname</th><th>`+templ.EscapeString(data.XAxis.Label)+`</th><th>`+templ.EscapeString(data.YAxis.Label)+`</th></tr></thead><tbody></tbody></table>
      </section>

    <script>
      const fit = document.getElementById("fit");
      const scatter = document.getElementById("scatter");
      const tbody = document.querySelector("#points tbody");

      async function refresh() {
        const pointsRes = await fetch("/api/datapoints");
        const pointsData = await pointsRes.json();
        tbody.replaceChildren();
        for (const point of pointsData.points || []) {
          const row = tbody.insertRow();
          row.insertCell().textContent = point.nickname;
          row.insertCell().textContent = point.x;
          row.insertCell().textContent = point.y;
        }

        const res = await fetch("/api/datapoints/regression");
        const data = await res.json();
        if (!res.ok) {
          fit.className = "result warning";
          fit.textContent = data.error || "Unable to fit a line yet.";
          scatter.hidden = true;
          return;
        }
        fit.className = "result";
        fit.textContent = "y = " + data.fit.slope.toFixed(3) + "x + " + data.fit.intercept.toFixed(3) + " (n = " + data.fit.n + ")";
        scatter.src = "/api/datapoints/regression.png?t=" + Date.now();
        scatter.hidden = false;
      }

      document.getElementById("refresh").addEventListener("click", refresh);
      refresh();
    </script>`)
			return err
		}))
	})
}

func CollectAudienceView(data CollectData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(ctx, w, "QuizItUp - Share your data", "audience", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `      <header class="hero">
        <h1>Share your data</h1>
      </header>

      <section class="panel">
        <form id="pointForm">
          <label>Nickname <input name="nickname" autocomplete="nickname" required/></label>
          <label>`+templ.EscapeString(data.XAxis.Label)+` <input name="x" type="number" step="any" min="`+formatFloat(data.XAxis.Min)+`" max="`+formatFloat(data.XAxis.Max)+`" required/></label>
          <label>`+templ.EscapeString(data.YAxis.Label)+` <input name="y" type="number" step="any" min="`+formatFloat(data.YAxis.Min)+`" max="`+formatFloat(data.YAxis.Max)+`" required/></label>
          <button type="submit" class="secondary">Submit</button>
        </form>
        <div id="status" class="result"></div>
      </section>

    <script>
      const form = document.getElementById("pointForm");
      const status = document.getElementById("status");

      form.elements.nickname.addEventListener("change", async () => {
        const nickname = form.elements.nickname.value.trim();
        if (!nickname) {
          return;
        }
        const res = await fetch("/api/datapoints/" + encodeURIComponent(nickname));
        if (res.ok) {
          status.className = "result warning";
          status.textContent = "You have already submitted a response.";
        } else {
          status.textContent = "";
        }
      });

      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        const res = await fetch("/api/datapoints", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            nickname: form.elements.nickname.value,
            x: Number(form.elements.x.value),
            y: Number(form.elements.y.value)
          })
        });
        const data = await res.json();
        if (!res.ok) {
          status.className = "result error";
          status.textContent = data.error || "Failed to submit.";
          return;
        }
        form.hidden = true;
        status.className = "result";
        status.textContent = "Thanks! Your response was recorded.";
      });
    </script>`)
			return err
		}))
	})
}
