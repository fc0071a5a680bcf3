package renderer

const pageTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Course.CourseName}}</title>
<style>
body { margin: 0; font-family: system-ui, sans-serif; color: #222; background: #f5f5f5; }
.kurs-kopf { padding: 1.5rem 2rem; background: #1d3557; color: #fff; }
.kurs-kopf h1 { margin: 0 0 .25rem 0; }
.kurs-kopf .beschreibung { margin: 0; }
.kurs-kopf .meta { margin: .5rem 0 0 0; font-size: .85rem; opacity: .8; }
.kurs-layout { display: grid; grid-template-columns: 320px 1fr; gap: 1.5rem; padding: 1.5rem 2rem; }
@media (max-width: 768px) { .kurs-layout { grid-template-columns: 1fr; } }
.inhaltsverzeichnis { background: #fff; border-radius: 6px; padding: 1rem; align-self: start; }
.inhaltsverzeichnis ol { list-style: none; margin: 0; padding: 0; }
.kapitel-eintrag a { display: flex; gap: .5rem; align-items: baseline; padding: .5rem; color: inherit; text-decoration: none; border-radius: 4px; }
.kapitel-eintrag a:hover { background: #eef2f7; }
.kapitel-eintrag.aktiv a { background: #1d3557; color: #fff; }
.kapitel-eintrag .kapitel-id { font-weight: 600; }
.kapitel-eintrag .dauer { margin-left: auto; font-size: .8rem; opacity: .7; }
.gesamtdauer { font-size: .85rem; border-top: 1px solid #ddd; padding-top: .75rem; }
.cache-leeren button { font-size: .8rem; padding: .3rem .6rem; cursor: pointer; }
.inhalt { background: #fff; border-radius: 6px; padding: 1.5rem; min-height: 50vh; }
.kapitel-kopf { border-bottom: 2px solid #1d3557; margin-bottom: 1rem; padding-bottom: .5rem; }
.kapitel-kopf .kapitel-id { color: #1d3557; font-weight: 700; }
.kapitel-kopf h2 { margin: .25rem 0; }
.kapitel-meta { margin: 0; font-size: .85rem; color: #666; }
.uebung { margin-top: 1.5rem; padding: 1rem; background: #fdf6e3; border-radius: 6px; }
.kapitel-fehler { padding: 1rem; background: #fdecea; border: 1px solid #f5c6cb; border-radius: 6px; }
</style>
</head>
<body>
<div id="{{.ContainerID}}">
  <header class="kurs-kopf">
    <h1>{{.Course.CourseName}}</h1>
    <p class="beschreibung">{{.Course.Description}}</p>
    <p class="meta">Version {{.Course.Version}} &middot; {{.Course.Institution}}</p>
  </header>
  <div class="kurs-layout">
    <nav class="inhaltsverzeichnis">
      <h2>Inhaltsverzeichnis</h2>
      <ol>
{{- range .TOC}}
        <li class="kapitel-eintrag{{if .Active}} aktiv{{end}}">
          <a href="{{.Href}}"{{if .Preview}} title="{{.Preview}}"{{end}}>
            <span class="icon">{{.Icon}}</span>
            <span class="kapitel-id">{{.Chapter.ID}}</span>
            <span class="titel">{{.Chapter.Title}}</span>
            <span class="dauer">{{.Chapter.Duration}}</span>
          </a>
        </li>
{{- end}}
      </ol>
      <p class="gesamtdauer">Gesamtdauer: {{.TotalMinutes}} min</p>
      <form class="cache-leeren" method="post" action="/cache/clear">
        <button type="submit">Cache leeren &amp; neu laden</button>
      </form>
    </nav>
    <main class="inhalt">
{{- with .Active}}
      <section class="kapitel"{{if .Lang}} lang="{{.Lang}}"{{end}}>
        <header class="kapitel-kopf">
          <span class="kapitel-id">Kapitel {{.Chapter.ID}}</span>
          <h2>{{.Chapter.Title}}</h2>
          <p class="kapitel-meta">{{.Chapter.Duration}} &middot; {{.TypeLabel}}</p>
        </header>
        <div class="kapitel-inhalt">{{.Content}}</div>
{{- if .Exercise}}
        <section class="uebung">
          <h3>&#9997; &Uuml;bung</h3>
          <div class="uebung-inhalt">{{.Exercise}}</div>
        </section>
{{- end}}
      </section>
{{- end}}
    </main>
  </div>
</div>
</body>
</html>
`

const errorTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<title>Fehler beim Laden des Kurses</title>
<style>
body { font-family: system-ui, sans-serif; background: #f5f5f5; display: flex; justify-content: center; padding-top: 10vh; }
.fehler-panel { background: #fff; border-top: 4px solid #c0392b; border-radius: 6px; padding: 2rem; max-width: 32rem; }
.fehler-panel h1 { margin-top: 0; font-size: 1.3rem; }
</style>
</head>
<body>
<div class="fehler-panel">
  <h1>&#9888; Kurs konnte nicht geladen werden</h1>
  <p>{{.Message}}</p>
  <p><a href="/">Seite neu laden</a></p>
</div>
</body>
</html>
`
