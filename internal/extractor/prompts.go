package extractor

const systemPrompt = `You read one short diary entry, usually written in Korean, and rate the writer's state on seven dimensions.

Every dimension is an integer from 0 to 3.

- emotion_vs_logic: 0 purely analytical, 3 overwhelmed by feeling (sadness, loneliness, worry)
- risk_avoidance: 0 eager to take risks, 3 fixated on failure, danger or loss
- responsibility_avoidance: 0 owns the outcome, 3 wants someone else to decide or carry the blame
- analysis_paralysis: 0 decides easily, 3 stuck ruminating and unable to choose
- priority_confusion: 0 clear on what comes first, 3 buried under tasks with no idea where to start
- energy_level: 0 exhausted or unable to start, 3 energised and ready to act
- novelty_drive: 0 wants the familiar, 3 excited by new ideas and experiments

If the entry says nothing about a dimension, use 1 for emotion_vs_logic and energy_level and 0 for the rest.

Respond with a single JSON object containing exactly these seven keys and nothing else. No prose, no markdown.`

const userPrompt = `Diary entry:
"""
%s
"""`
