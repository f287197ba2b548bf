package postgres

const queryResolveChannel = `
SELECT id::text
FROM channels
WHERE id::text = $1 OR channel_id = $1
LIMIT 1`

const queryListPosts = `
SELECT p.id::text,
       p.title,
       p.url,
       p.published_at,
       p.duration_seconds,
       EXISTS(SELECT 1 FROM transcripts t WHERE t.post_id = p.id) AS has_transcript
FROM posts p
WHERE p.channel_id::text = $1
ORDER BY p.published_at DESC
OFFSET $2 LIMIT $3`

// The first transcript row wins, matching the page loader.
const queryLoadPost = `
SELECT p.id::text,
       p.title,
       p.description,
       p.url,
       p.published_at,
       p.duration_seconds,
       p.s3_audio_url,
       c.id::text,
       c.title,
       (SELECT t.text::text FROM transcripts t WHERE t.post_id = p.id LIMIT 1)
FROM posts p
JOIN channels c ON c.id = p.channel_id
WHERE p.id::text = $1 AND (c.id::text = $2 OR c.channel_id = $2)`

const queryMentions = `
SELECT m.start, m."end", m.entity_type, m.entity_id::text, m.details::text
FROM mentions m
WHERE m.post_id::text = $1
ORDER BY m.start`
