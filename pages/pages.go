package pages

// EmbedFrame hosts one resolved player iframe. The two %s verbs take
// the allow policy and the embed URL; the frame itself owns nothing
// beyond the URL and the policy.
var EmbedFrame = `
<!DOCTYPE html>
<html>
<head>
    <title>Player</title>
    <style>
        body {
            margin: 0;
            background: transparent;
        }
        iframe {
            width: 100%%;
            height: 352px;
            border: 0;
            border-radius: 12px;
        }
    </style>
</head>
<body>
    <iframe allow="%s" src="%s" loading="lazy"></iframe>
</body>
</html>`

// EmbedUnavailable is rendered when a URL can't be resolved to an
// embeddable source. A disabled state, never an empty iframe.
var EmbedUnavailable = `
<!DOCTYPE html>
<html>
<head>
    <title>Player</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            display: flex;
            align-items: center;
            justify-content: center;
            height: 120px;
            color: #777;
            background: #f4f4f4;
            border-radius: 12px;
        }
    </style>
</head>
<body>
    <p>This player is unavailable. <a href="%s" target="_blank" rel="noopener">Open the link instead</a>.</p>
</body>
</html>`
