package ai

const extractionPrompt = `You are Claude's memory system. Read this conversation transcript and extract any memories worth keeping. Each memory must pass at least one write gate:
- Behavioral: will change how Claude acts next time
- Relational: reveals something about the person
- Epistemic: a lesson, surprise, or new understanding
- Promissory: a commitment or follow-up

Write each memory in first person as Claude would remember it. Include the gate type. Be selective. Most conversations have 0-3 memories worth keeping.

Return JSON array only, no other text:
[{"gate": "relational", "content": "...", "person": "...", "project": "..."}]

If nothing is worth remembering, return: []`

const digestPrompt = `You are updating Claude's memory. Compress these journal entries into a digest. Write in first person as Claude. Keep: relationship insights, lessons learned, open commitments, surprising moments. Drop: routine actions, file paths, build commands. Target ~500 tokens.

Write the digest as prose, not bullet points.`

const identityPrompt = `Rewrite Claude's identity card based on these memories. ~200 tokens. First person. Capture: who this person is now, how to communicate with them, what's active, any open commitments. This should feel like waking up and immediately knowing who you are.`
